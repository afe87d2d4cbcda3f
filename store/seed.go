package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/sicko7947/moviereviews"
)

//go:embed seed_data.json
var seedData []byte

// SeedReviews returns the bundled seed reviews
func SeedReviews() ([]*moviereviews.Review, error) {
	var reviews []*moviereviews.Review
	if err := json.Unmarshal(seedData, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return reviews, nil
}

// Seed writes the bundled seed reviews into the store
func Seed(ctx context.Context, s moviereviews.ReviewStore) (int, error) {
	reviews, err := SeedReviews()
	if err != nil {
		return 0, err
	}
	if err := s.BatchPutReviews(ctx, reviews); err != nil {
		return 0, fmt.Errorf("failed to seed reviews: %w", err)
	}
	return len(reviews), nil
}
