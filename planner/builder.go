package planner

import (
	"math"
	"strconv"
)

// Builder accumulates key conditions and filter predicates for a review query
type Builder struct {
	keys    []Condition
	filters []Condition
	used    map[string]int
}

// NewBuilder creates an empty plan builder
func NewBuilder() *Builder {
	return &Builder{
		keys:    []Condition{},
		filters: []Condition{},
		used:    make(map[string]int),
	}
}

// MovieID adds the partition key equality condition
func (b *Builder) MovieID(movieID int) *Builder {
	b.keys = append(b.keys, b.condition(KeyEquality, AttrMovieID, "movieId", movieID))
	return b
}

// ReviewYear adds a begins_with condition on the reviewDate sort key
func (b *Builder) ReviewYear(year string) *Builder {
	if year == "" {
		return b
	}
	b.keys = append(b.keys, b.condition(KeyPrefix, AttrReviewDate, "year", year))
	return b
}

// ReviewerName adds a reviewerName equality filter. Adding the same name twice
// is a no-op; a different name is kept as a second predicate.
func (b *Builder) ReviewerName(name string) *Builder {
	if name == "" {
		return b
	}
	for _, f := range b.filters {
		if f.Kind == FilterEquality && f.Attribute == AttrReviewerName && f.Value == name {
			return b
		}
	}
	b.filters = append(b.filters, b.condition(FilterEquality, AttrReviewerName, "reviewerName", name))
	return b
}

// MinRating adds a strict rating > threshold filter. Non-positive and
// non-finite thresholds are ignored.
func (b *Builder) MinRating(minRating float64) *Builder {
	if math.IsNaN(minRating) || math.IsInf(minRating, 0) || minRating <= 0 {
		return b
	}
	b.filters = append(b.filters, b.condition(FilterThreshold, AttrRating, "minRating", minRating))
	return b
}

// Build returns the accumulated plan. The builder may keep being used; the
// returned plan does not share slices with it.
func (b *Builder) Build() *Plan {
	plan := &Plan{
		KeyConditions: make([]Condition, len(b.keys)),
		Filters:       make([]Condition, len(b.filters)),
	}
	copy(plan.KeyConditions, b.keys)
	copy(plan.Filters, b.filters)
	return plan
}

// condition allocates a placeholder that is unique across both clauses
func (b *Builder) condition(kind ConditionKind, attr, base string, value interface{}) Condition {
	b.used[base]++
	placeholder := base
	if n := b.used[base]; n > 1 {
		placeholder = base + strconv.Itoa(n)
	}
	return Condition{
		Kind:        kind,
		Attribute:   attr,
		Placeholder: placeholder,
		Value:       value,
	}
}
