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

package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/estato/geomatch/internal/match"
)

// Counters aggregates per-run observability numbers.
type Counters struct {
	Total              int
	Matched            int
	Unmatched          int
	UnmatchedZeroUsage int
	Skipped            int
	ByMethod           map[match.Method]int
	ByPriority         map[int]int

	confidences map[match.Method][]float64
}

func (c *Counters) init() {
	c.ByMethod = make(map[match.Method]int)
	c.ByPriority = make(map[int]int)
	c.confidences = make(map[match.Method][]float64)
}

func (c *Counters) record(cand *match.Candidate) {
	c.Matched++
	c.ByMethod[cand.Method]++
	c.ByPriority[cand.Priority]++
	c.confidences[cand.Method] = append(c.confidences[cand.Method], cand.Confidence)
}

// MeanConfidence reports the average confidence of matches made by one
// method, zero when the method never fires.
func (c *Counters) MeanConfidence(m match.Method) float64 {
	conf := c.confidences[m]
	if len(conf) == 0 {
		return 0
	}
	return stat.Mean(conf, nil)
}

// Summary renders a compact one-line report for logs.
func (c *Counters) Summary() string {
	methods := make([]string, 0, len(c.ByMethod))
	for m := range c.ByMethod {
		methods = append(methods, string(m))
	}
	sort.Strings(methods)
	parts := make([]string, 0, len(methods)+len(c.ByPriority))
	for _, m := range methods {
		parts = append(parts, fmt.Sprintf("%s=%d(avg %.3f)", m, c.ByMethod[match.Method(m)], c.MeanConfidence(match.Method(m))))
	}
	priorities := make([]int, 0, len(c.ByPriority))
	for p := range c.ByPriority {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)
	for _, p := range priorities {
		parts = append(parts, fmt.Sprintf("tier%d=%d", p, c.ByPriority[p]))
	}
	return fmt.Sprintf("total=%d matched=%d unmatched=%d skipped=%d %s",
		c.Total, c.Matched, c.Unmatched, c.Skipped, strings.Join(parts, " "))
}

// WriteReviewArtifact writes the manual-review CSV: unmatched records that
// external listings actually reference (usage > 0), most used first.
// Zero-usage records are counted in the run but never surfaced here.
func WriteReviewArtifact(w io.Writer, unmatched []Record) error {
	review := make([]Record, 0, len(unmatched))
	for _, rec := range unmatched {
		if rec.UsageCount > 0 {
			review = append(review, rec)
		}
	}
	sort.Slice(review, func(i, j int) bool {
		if review[i].UsageCount != review[j].UsageCount {
			return review[i].UsageCount > review[j].UsageCount
		}
		return review[i].ID < review[j].ID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source_id", "names", "usage_count"}); err != nil {
		return fmt.Errorf("unable to write review header: %w", err)
	}
	for _, rec := range review {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			strings.Join(rec.Names, " | "),
			strconv.Itoa(rec.UsageCount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write review row for %d: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
