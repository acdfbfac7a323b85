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

// Command resolve resolves one listing's coordinates and description to a
// canonical street. Useful for spot-checking resolver behavior against
// production data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/estato/geomatch/internal/catalog"
	"github.com/estato/geomatch/internal/complexes"
	"github.com/estato/geomatch/internal/resolver"
	"github.com/estato/geomatch/internal/spatial"
	"github.com/estato/geomatch/pkg/config"
	"github.com/estato/geomatch/pkg/db"
	"github.com/estato/geomatch/pkg/logging"
)

func main() {
	root := &cobra.Command{
		Use:          "resolve",
		Short:        "Resolve one listing's coordinates and text to a canonical street",
		RunE:         run,
		SilenceUsage: true,
	}
	root.Flags().String("config", "config.yaml", "path to the YAML configuration")
	root.Flags().Float64("lng", 0, "listing longitude (WGS84)")
	root.Flags().Float64("lat", 0, "listing latitude (WGS84)")
	root.Flags().String("text", "", "listing description")
	root.Flags().Int64("geo-hint", 0, "canonical geo id to scope the spatial query")
	root.Flags().String("source", "", "listing source, for the text trust policy")
	_ = root.MarkFlagRequired("lng")
	_ = root.MarkFlagRequired("lat")

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

	pool, err := db.NewConnection(ctx, db.DBCreds(cfg.DBCreds))
	if err != nil {
		return err
	}
	defer pool.Close()

	streets, err := catalog.LoadStreets(ctx, pool)
	if err != nil {
		return err
	}
	names := resolver.NewNameCache()
	names.Reload(streets)

	devs, err := complexes.Load(ctx, pool)
	if err != nil {
		return err
	}
	log.Info().Int("streets", names.Len()).Int("complexes", len(devs)).Msg("resolver caches loaded")

	store := spatial.NewPostGISStore(pool)
	opts := []resolver.Option{
		resolver.WithComplexes(complexes.New(devs)),
		resolver.WithPolicy(resolver.NewSourcePolicy(cfg.Resolver.TrustTextSources)),
		resolver.WithCandidateLimit(cfg.Resolver.CandidateLimit),
		resolver.WithRadius(cfg.Resolver.RadiusMeters),
	}
	r := resolver.New(store, names, log, opts...)

	req := resolver.Request{}
	req.Lng, _ = cmd.Flags().GetFloat64("lng")
	req.Lat, _ = cmd.Flags().GetFloat64("lat")
	req.Text, _ = cmd.Flags().GetString("text")
	req.GeoIDHint, _ = cmd.Flags().GetInt64("geo-hint")
	req.Source, _ = cmd.Flags().GetString("source")

	if req.GeoIDHint == 0 {
		hint, err := store.GeoContaining(ctx, req.Lng, req.Lat)
		if err != nil {
			return err
		}
		if hint != 0 {
			log.Info().Int64("geo_id", hint).Msg("scoping to containing locality")
			req.GeoIDHint = hint
		}
	}

	res, ok, err := r.Resolve(ctx, req)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no match")
		return nil
	}
	fmt.Printf("street_id=%d geo_id=%d method=%s confidence=%.3f distance=%.1fm\n",
		res.StreetID, res.GeoID, res.Method, res.Confidence, res.DistanceMeters)
	return nil
}
