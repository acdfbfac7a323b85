// Package match defines the shared match vocabulary: provenance methods,
// transient candidates, and the geo-priority tie-break order.
package match

// Method tags the provenance of a resolved mapping.
type Method string

const (
	MethodExactName   Method = "exact_name"
	MethodRenamed     Method = "renamed"
	MethodFuzzyCity   Method = "fuzzy_city"
	MethodFuzzyRegion Method = "fuzzy_region"
	MethodTextParsed  Method = "text_parsed"
	MethodTextFound   Method = "text_found"
	MethodNearest     Method = "nearest"
	MethodCoordinates Method = "coordinates"
	MethodManual      Method = "manual"
)

// Geo priority ranks locality closeness between a record and a candidate.
// Lower is closer and always wins the tie-break.
const (
	PrioritySameGeo    = 1
	PrioritySameCity   = 2
	PrioritySameRegion = 3
)

// Candidate is a transient scored match for one canonical street.
type Candidate struct {
	StreetID       int64
	GeoID          int64
	Priority       int
	Confidence     float64
	Method         Method
	DistanceMeters float64
}

// Less is the total order over candidates: lower geo priority first, then
// higher confidence, then lower street id so equal candidates order
// deterministically.
func Less(a, b Candidate) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.StreetID < b.StreetID
}

// Better reports whether a should replace the current best b; a nil best is
// always replaced.
func Better(a Candidate, b *Candidate) bool {
	if b == nil {
		return true
	}
	return Less(a, *b)
}
