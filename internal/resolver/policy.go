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

package resolver

// SourcePolicy marks listing sources whose coordinates are known to be
// approximate (centroid of a district, office address instead of the
// property). For those sources a textual street mention outranks proximity:
// when the text yields no accepted match, the resolver withholds the
// nearest-street fallback rather than attach a probably-wrong street.
type SourcePolicy struct {
	trustText map[string]struct{}
}

// NewSourcePolicy builds a policy from the list of text-trusting sources.
func NewSourcePolicy(sources []string) *SourcePolicy {
	p := &SourcePolicy{trustText: make(map[string]struct{}, len(sources))}
	for _, s := range sources {
		p.trustText[s] = struct{}{}
	}
	return p
}

// TrustTextOverCoordinates reports whether the source's text should outrank
// its coordinates.
func (p *SourcePolicy) TrustTextOverCoordinates(source string) bool {
	if p == nil {
		return false
	}
	_, ok := p.trustText[source]
	return ok
}
