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

// Package renames resolves historical street names against their current
// official names. The table is built once from a static dataset and read
// concurrently afterwards.
package renames

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/estato/geomatch/internal/normalize"
)

// Entry is one rename record from the static dataset. Both sides are full
// official display names.
type Entry struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Table maps a normalized old-name variant to the normalized variants of the
// street's current name.
type Table struct {
	entries map[string][]string
}

// Load reads a YAML rename dataset and builds the lookup table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read rename dataset: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unable to unmarshal rename dataset: %w", err)
	}
	return New(entries), nil
}

// New builds the table from in-memory entries. Bare-surname variant
// generation is disabled on both sides: renames carry full official names,
// and expanding single surnames here would cross-link unrelated streets.
func New(entries []Entry) *Table {
	opts := normalize.Options{NoBareSurnames: true}
	t := &Table{entries: make(map[string][]string, len(entries))}
	for _, e := range entries {
		newVars := normalize.Variants(e.New, opts)
		if len(newVars) == 0 {
			continue
		}
		for _, oldVar := range normalize.Variants(e.Old, opts) {
			t.entries[oldVar] = mergeSorted(t.entries[oldVar], newVars)
		}
	}
	return t
}

// Lookup returns the current-name variants for a normalized old name, or nil
// when the name has no recorded rename.
func (t *Table) Lookup(normalizedOld string) []string {
	return t.entries[normalizedOld]
}

// Len reports the number of distinct old-name variants in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

func mergeSorted(existing, add []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(add))
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range add {
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
