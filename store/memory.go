package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/planner"
)

// MemoryStore implements moviereviews.ReviewStore using in-memory storage.
// Plans are evaluated condition by condition with the same key/filter split
// as DynamoDB.
type MemoryStore struct {
	reviews map[moviereviews.ReviewKey]*moviereviews.Review
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory review store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reviews: make(map[moviereviews.ReviewKey]*moviereviews.Review),
	}
}

// Read operations

func (s *MemoryStore) QueryReviews(ctx context.Context, plan *planner.Plan) ([]*moviereviews.Review, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if plan.IsScan() {
		return nil, fmt.Errorf("%w: query requires a partition key condition", planner.ErrInvalidPlan)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []*moviereviews.Review
	for _, review := range s.reviews {
		if !matchesAll(review, plan.KeyConditions) || !matchesAll(review, plan.Filters) {
			continue
		}
		reviewCopy := *review
		reviews = append(reviews, &reviewCopy)
	}

	// Query results come back in sort key order
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ReviewDate < reviews[j].ReviewDate
	})

	return reviews, nil
}

func (s *MemoryStore) ScanReviews(ctx context.Context, plan *planner.Plan) ([]*moviereviews.Review, error) {
	if plan == nil {
		plan = planner.AllReviewsPlan()
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if !plan.IsScan() {
		return nil, fmt.Errorf("%w: scan does not accept key conditions", planner.ErrInvalidPlan)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []*moviereviews.Review
	for _, review := range s.reviews {
		if !matchesAll(review, plan.Filters) {
			continue
		}
		reviewCopy := *review
		reviews = append(reviews, &reviewCopy)
	}

	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].MovieID != reviews[j].MovieID {
			return reviews[i].MovieID < reviews[j].MovieID
		}
		return reviews[i].ReviewDate < reviews[j].ReviewDate
	})

	return reviews, nil
}

// Write operations

func (s *MemoryStore) PutReview(ctx context.Context, review *moviereviews.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := review.Key()
	if _, exists := s.reviews[key]; exists {
		return fmt.Errorf("review %s: %w", key, moviereviews.ErrConflict)
	}

	reviewCopy := *review
	s.reviews[key] = &reviewCopy
	return nil
}

func (s *MemoryStore) UpdateReviewContent(ctx context.Context, key moviereviews.ReviewKey, reviewerName, content string) (*moviereviews.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, exists := s.reviews[key]
	if !exists || review.ReviewerName != reviewerName {
		return nil, fmt.Errorf("review %s by %s: %w", key, reviewerName, moviereviews.ErrNotFound)
	}

	review.Content = content
	reviewCopy := *review
	return &reviewCopy, nil
}

func (s *MemoryStore) BatchPutReviews(ctx context.Context, reviews []*moviereviews.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Batch writes overwrite, like BatchWriteItem
	for _, review := range reviews {
		reviewCopy := *review
		s.reviews[review.Key()] = &reviewCopy
	}
	return nil
}

// Len returns the number of stored reviews
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}

func matchesAll(review *moviereviews.Review, conditions []planner.Condition) bool {
	for _, c := range conditions {
		if !matches(review, c) {
			return false
		}
	}
	return true
}

func matches(review *moviereviews.Review, c planner.Condition) bool {
	switch c.Kind {
	case planner.KeyEquality, planner.FilterEquality:
		switch c.Attribute {
		case planner.AttrMovieID:
			id, ok := c.Value.(int)
			return ok && review.MovieID == id
		case planner.AttrReviewDate:
			return review.ReviewDate == c.Value
		case planner.AttrReviewerName:
			return review.ReviewerName == c.Value
		case planner.AttrContent:
			return review.Content == c.Value
		case planner.AttrRating:
			return float64(review.Rating) == toFloat(c.Value)
		}
	case planner.KeyPrefix:
		prefix, ok := c.Value.(string)
		return ok && c.Attribute == planner.AttrReviewDate && strings.HasPrefix(review.ReviewDate, prefix)
	case planner.FilterThreshold:
		return c.Attribute == planner.AttrRating && float64(review.Rating) > toFloat(c.Value)
	}
	return false
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case moviereviews.Rating:
		return float64(n)
	default:
		return 0
	}
}

// Verify interface compliance
var _ moviereviews.ReviewStore = (*MemoryStore)(nil)
