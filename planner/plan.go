package planner

import (
	"errors"
	"fmt"
	"strings"
)

// Plan is a fully bound review query. KeyConditions prune the partition and
// sort-key range; Filters are applied to each item after retrieval.
type Plan struct {
	KeyConditions []Condition
	Filters       []Condition
}

// KeyConditionExpression joins the key conditions with AND
func (p *Plan) KeyConditionExpression() string {
	return join(p.KeyConditions)
}

// FilterExpression joins the filter predicates with AND. Empty when the plan
// has no filters.
func (p *Plan) FilterExpression() string {
	return join(p.Filters)
}

// BoundValues maps every placeholder token (":name") to its literal value
func (p *Plan) BoundValues() map[string]interface{} {
	values := make(map[string]interface{}, len(p.KeyConditions)+len(p.Filters))
	for _, c := range p.KeyConditions {
		values[c.Token()] = c.Value
	}
	for _, c := range p.Filters {
		values[c.Token()] = c.Value
	}
	return values
}

// IsScan reports whether the plan has no key conditions and must run as a scan
func (p *Plan) IsScan() bool {
	return len(p.KeyConditions) == 0
}

// PartitionKey returns the bound movieId
func (p *Plan) PartitionKey() (int, bool) {
	for _, c := range p.KeyConditions {
		if c.Kind == KeyEquality && c.Attribute == AttrMovieID {
			id, ok := c.Value.(int)
			return id, ok
		}
	}
	return 0, false
}

// SortKeyPrefix returns the bound reviewDate prefix
func (p *Plan) SortKeyPrefix() (string, bool) {
	for _, c := range p.KeyConditions {
		if c.Kind == KeyPrefix {
			prefix, ok := c.Value.(string)
			return prefix, ok
		}
	}
	return "", false
}

// ErrInvalidPlan is wrapped by every Validate failure
var ErrInvalidPlan = errors.New("invalid query plan")

// Validate checks the plan against the table's key schema: at most one
// partition equality (required for queries), at most one range condition and
// only on reviewDate, no key attribute in the filter clause, and unique
// placeholders.
func (p *Plan) Validate() error {
	seen := make(map[string]bool)
	for _, c := range append(append([]Condition{}, p.KeyConditions...), p.Filters...) {
		if seen[c.Placeholder] {
			return fmt.Errorf("%w: duplicate placeholder %s", ErrInvalidPlan, c.Token())
		}
		seen[c.Placeholder] = true
	}

	if p.IsScan() {
		for _, f := range p.Filters {
			if f.Kind.IsKey() {
				return fmt.Errorf("%w: %s condition in filter clause", ErrInvalidPlan, f.Kind)
			}
		}
		return nil
	}

	var partitions, ranges int
	for _, c := range p.KeyConditions {
		switch {
		case c.Kind == KeyEquality && c.Attribute == AttrMovieID:
			partitions++
		case c.Kind == KeyPrefix && c.Attribute == AttrReviewDate:
			ranges++
		default:
			return fmt.Errorf("%w: %s on %s is not a key condition", ErrInvalidPlan, c.Kind, c.Attribute)
		}
	}
	if partitions != 1 {
		return fmt.Errorf("%w: expected one partition key condition, got %d", ErrInvalidPlan, partitions)
	}
	if ranges > 1 {
		return fmt.Errorf("%w: expected at most one sort key condition, got %d", ErrInvalidPlan, ranges)
	}

	for _, f := range p.Filters {
		if f.Kind.IsKey() || f.Attribute == AttrMovieID || f.Attribute == AttrReviewDate {
			return fmt.Errorf("%w: key attribute %s in filter clause", ErrInvalidPlan, f.Attribute)
		}
	}
	return nil
}

func join(conditions []Condition) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		parts = append(parts, c.Expression())
	}
	return strings.Join(parts, " AND ")
}
