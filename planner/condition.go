package planner

import "fmt"

// Review table attributes
const (
	AttrMovieID      = "movieId"
	AttrReviewDate   = "reviewDate"
	AttrReviewerName = "reviewerName"
	AttrContent      = "content"
	AttrRating       = "rating"
)

// ConditionKind tags the variant a Condition represents
type ConditionKind int

const (
	// KeyEquality is an exact match on the partition key
	KeyEquality ConditionKind = iota
	// KeyPrefix is a begins_with match on the sort key
	KeyPrefix
	// FilterEquality is a post-retrieval equality predicate
	FilterEquality
	// FilterThreshold is a post-retrieval strict greater-than predicate
	FilterThreshold
)

// String returns the kind name used in logs and validation errors
func (k ConditionKind) String() string {
	switch k {
	case KeyEquality:
		return "KEY_EQUALITY"
	case KeyPrefix:
		return "KEY_PREFIX"
	case FilterEquality:
		return "FILTER_EQUALITY"
	case FilterThreshold:
		return "FILTER_THRESHOLD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
}

// IsKey reports whether the kind belongs in the key-condition clause
func (k ConditionKind) IsKey() bool {
	return k == KeyEquality || k == KeyPrefix
}

// Condition is a single typed predicate with its bound value.
// Placeholder is stored without the leading colon.
type Condition struct {
	Kind        ConditionKind
	Attribute   string
	Placeholder string
	Value       interface{}
}

// Token returns the placeholder as it appears in an expression (":name")
func (c Condition) Token() string {
	return ":" + c.Placeholder
}

// Expression renders the condition in DynamoDB expression syntax
func (c Condition) Expression() string {
	switch c.Kind {
	case KeyEquality, FilterEquality:
		return fmt.Sprintf("%s = %s", c.Attribute, c.Token())
	case KeyPrefix:
		return fmt.Sprintf("begins_with(%s, %s)", c.Attribute, c.Token())
	case FilterThreshold:
		return fmt.Sprintf("%s > %s", c.Attribute, c.Token())
	default:
		return ""
	}
}
