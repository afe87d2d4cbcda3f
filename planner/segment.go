package planner

import "regexp"

// SegmentKind classifies the combined reviewer-name-or-year path segment
type SegmentKind int

const (
	SegmentEmpty SegmentKind = iota
	SegmentYear
	SegmentReviewerName
)

// Segment is the result of disambiguating a path segment
type Segment struct {
	Kind  SegmentKind
	Value string
}

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

// DisambiguateSegment classifies a path token. Exactly four ASCII digits is a
// year (a reviewDate prefix); any other non-empty token is a reviewer name.
func DisambiguateSegment(segment string) Segment {
	switch {
	case segment == "":
		return Segment{Kind: SegmentEmpty}
	case yearPattern.MatchString(segment):
		return Segment{Kind: SegmentYear, Value: segment}
	default:
		return Segment{Kind: SegmentReviewerName, Value: segment}
	}
}

// Year returns the year and whether the segment is one
func (s Segment) Year() (string, bool) {
	return s.Value, s.Kind == SegmentYear
}

// ReviewerName returns the reviewer name and whether the segment is one
func (s Segment) ReviewerName() (string, bool) {
	return s.Value, s.Kind == SegmentReviewerName
}
