// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

// Command reconcile runs the batch street reconciliation for one external
// source: it matches every staged street reference against the canonical
// catalog, replaces the persisted street mappings, and writes the unmatched
// names to a manual-review CSV.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/estato/geomatch/internal/catalog"
	"github.com/estato/geomatch/internal/mapping"
	"github.com/estato/geomatch/internal/reconcile"
	"github.com/estato/geomatch/internal/renames"
	"github.com/estato/geomatch/pkg/config"
	"github.com/estato/geomatch/pkg/db"
	"github.com/estato/geomatch/pkg/logging"
)

func main() {
	root := &cobra.Command{
		Use:          "reconcile",
		Short:        "Reconcile an external source's street names against the canonical catalog",
		RunE:         run,
		SilenceUsage: true,
	}
	root.Flags().String("config", "config.yaml", "path to the YAML configuration")
	root.Flags().String("source", "", "external source to reconcile (overrides the configured one)")
	root.Flags().Bool("dry-run", false, "match and report, but do not persist mappings")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Logging.Level, cfg.Logging.Pretty)

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = cfg.Reconciler.Source
	}
	if source == "" {
		return fmt.Errorf("no source given: set --source or reconciler.source")
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	pool, err := db.NewConnection(ctx, db.DBCreds(cfg.DBCreds))
	if err != nil {
		return err
	}
	defer pool.Close()

	geos, err := catalog.LoadGeos(ctx, pool)
	if err != nil {
		return err
	}
	streets, err := catalog.LoadStreets(ctx, pool)
	if err != nil {
		return err
	}
	hierarchy := catalog.NewHierarchy(geos)
	index := catalog.BuildStreetIndex(hierarchy, streets)
	log.Info().Int("geos", len(geos)).Int("streets", len(streets)).Msg("canonical catalog loaded")

	table := renames.New(nil)
	if cfg.RenamesPath != "" {
		if table, err = renames.Load(cfg.RenamesPath); err != nil {
			return err
		}
		log.Info().Int("entries", table.Len()).Str("path", cfg.RenamesPath).Msg("rename table loaded")
	}

	store := mapping.NewStore(pool, log)
	geoMapping, err := store.Mapping(ctx, source, mapping.EntityGeo)
	if err != nil {
		return err
	}
	records, err := reconcile.LoadRecords(ctx, pool, source)
	if err != nil {
		return err
	}
	log.Info().Str("source", source).Int("records", len(records)).Int("geo_mappings", len(geoMapping)).Msg("reconciliation input loaded")

	out := reconcile.New(hierarchy, index, table, geoMapping, log).Run(records)
	log.Info().Str("run_id", out.RunID).Msg(out.Counters.Summary())

	if path, err := writeReview(cfg.Reconciler.ReviewDir, source, out); err != nil {
		return err
	} else if path != "" {
		log.Info().Str("path", path).Msg("manual-review artifact written")
	}

	if dryRun {
		log.Info().Msg("dry run: mappings not persisted")
		return nil
	}
	if err := store.Replace(ctx, source, mapping.EntityStreet, out.Mappings(source)); err != nil {
		return err
	}
	log.Info().Int("mappings", len(out.Matches)).Msg("street mappings replaced")
	return nil
}

// writeReview writes the unmatched-records CSV and returns its path, or ""
// when there is nothing worth reviewing.
func writeReview(dir, source string, out *reconcile.Outcome) (string, error) {
	if len(out.Unmatched) == 0 {
		return "", nil
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create review dir: %v", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("unmatched_%s_%s.csv", source, out.RunID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create review artifact: %v", err)
	}
	defer f.Close()

	if err := reconcile.WriteReviewArtifact(f, out.Unmatched); err != nil {
		return "", err
	}
	return path, nil
}
