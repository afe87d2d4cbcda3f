package moviereviews

import (
	"context"

	"github.com/sicko7947/moviereviews/planner"
)

// ReviewStore defines the persistence interface for movie reviews
type ReviewStore interface {
	// Reads. Query requires a plan with a partition key condition; Scan
	// requires a plan without key conditions. Both return items in table order.
	QueryReviews(ctx context.Context, plan *planner.Plan) ([]*Review, error)
	ScanReviews(ctx context.Context, plan *planner.Plan) ([]*Review, error)

	// Writes
	PutReview(ctx context.Context, review *Review) error
	UpdateReviewContent(ctx context.Context, key ReviewKey, reviewerName, content string) (*Review, error)
	BatchPutReviews(ctx context.Context, reviews []*Review) error
}

// Translator translates review text. An empty result means no translation
// was produced.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}
