// Package planner turns raw review lookup parameters into query plans for the
// MovieReviews table (partition key movieId, sort key reviewDate).
//
// A year is always expressed as a begins_with condition on the sort key and
// never as a filter. Reviewer name and rating are not key attributes and are
// always filters.
package planner

// BuildPlan composes a plan from a movie id, a disambiguated path segment, an
// optional minimum rating and an optional explicit reviewer name. When both
// the segment and the explicit name carry a reviewer, the predicates are
// AND-combined. BuildPlan never fails; movieID must already be validated.
func BuildPlan(movieID int, segment Segment, minRating *float64, explicitReviewerName string) *Plan {
	b := NewBuilder().MovieID(movieID)

	if year, ok := segment.Year(); ok {
		b.ReviewYear(year)
	}
	if name, ok := segment.ReviewerName(); ok {
		b.ReviewerName(name)
	}
	b.ReviewerName(explicitReviewerName)

	if minRating != nil {
		b.MinRating(*minRating)
	}

	return b.Build()
}

// MovieReviewsPlan is the entry point for /movies/{movieId}/reviews[/{reviewerNameOrYear}]
func MovieReviewsPlan(movieID int, reviewerNameOrYear string, minRating *float64) *Plan {
	return BuildPlan(movieID, DisambiguateSegment(reviewerNameOrYear), minRating, "")
}

// ReviewerReviewPlan is the entry point for lookups by movie and an explicit reviewer name
func ReviewerReviewPlan(movieID int, reviewerName string) *Plan {
	return BuildPlan(movieID, Segment{Kind: SegmentEmpty}, nil, reviewerName)
}

// ReviewerScanPlan filters a full-table scan by reviewer name
func ReviewerScanPlan(reviewerName string) *Plan {
	return NewBuilder().ReviewerName(reviewerName).Build()
}

// AllReviewsPlan is an unfiltered scan
func AllReviewsPlan() *Plan {
	return NewBuilder().Build()
}
