package moviereviews

import "fmt"

// SelectionPolicy decides which review to use when a movie+reviewer lookup
// returns more than one item. The table key is (movieId, reviewDate), so
// nothing guarantees a single review per reviewer.
type SelectionPolicy string

const (
	SelectFirst           SelectionPolicy = "FIRST"
	SelectErrorIfMultiple SelectionPolicy = "ERROR_IF_MULTIPLE"
	SelectMostRecent      SelectionPolicy = "MOST_RECENT"
)

// ParseSelectionPolicy parses a policy name, case-sensitive
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch p := SelectionPolicy(s); p {
	case SelectFirst, SelectErrorIfMultiple, SelectMostRecent:
		return p, nil
	default:
		return "", fmt.Errorf("unknown selection policy %q", s)
	}
}

// SelectReview picks one review from an ordered result set
func SelectReview(reviews []*Review, policy SelectionPolicy) (*Review, error) {
	if len(reviews) == 0 {
		return nil, NewReviewError(ErrCodeNotFound, "Movie review not found")
	}

	switch policy {
	case SelectFirst:
		return reviews[0], nil

	case SelectErrorIfMultiple:
		if len(reviews) > 1 {
			keys := make([]string, 0, len(reviews))
			for _, r := range reviews {
				keys = append(keys, r.Key().String())
			}
			return nil, WrapReviewError(ErrCodeAmbiguousMatch, "More than one review matches the movie and reviewer", ErrAmbiguous).
				WithDetails(map[string]interface{}{"matches": keys})
		}
		return reviews[0], nil

	case SelectMostRecent:
		latest := reviews[0]
		for _, r := range reviews[1:] {
			// ISO dates compare lexically
			if r.ReviewDate > latest.ReviewDate {
				latest = r
			}
		}
		return latest, nil

	default:
		return nil, NewReviewError(ErrCodeInternalError, fmt.Sprintf("unknown selection policy %q", policy))
	}
}
