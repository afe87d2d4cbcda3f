// Package service orchestrates the review query planner, the review store
// and the translator behind the operations exposed by the HTTP API.
package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/planner"
)

// ReviewService implements the movie review operations
type ReviewService struct {
	store      moviereviews.ReviewStore
	translator moviereviews.Translator
	logger     zerolog.Logger
	config     moviereviews.ServiceConfig
}

// ServiceOption configures the review service
type ServiceOption func(*ReviewService)

// WithLogger sets a custom logger for the service
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *ReviewService) {
		s.logger = logger
	}
}

// WithConfig sets a custom configuration for the service
func WithConfig(config moviereviews.ServiceConfig) ServiceOption {
	return func(s *ReviewService) {
		s.config = config
	}
}

// NewReviewService creates a review service with optional configuration.
// A nil translator disables the translation operation.
// If no logger is provided, a default stdout logger with Info level is used.
func NewReviewService(store moviereviews.ReviewStore, translator moviereviews.Translator, opts ...ServiceOption) *ReviewService {
	// Default logger: pretty console output, Info level
	defaultLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	svc := &ReviewService{
		store:      store,
		translator: translator,
		logger:     defaultLogger,
		config:     moviereviews.DefaultServiceConfig,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// ListAllReviews returns every review in the table
func (s *ReviewService) ListAllReviews(ctx context.Context) ([]*moviereviews.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	logger := s.log(ctx)

	start := time.Now()
	reviews, err := s.store.ScanReviews(ctx, planner.AllReviewsPlan())
	if err != nil {
		moviereviews.LogStoreError(logger, "scan_all", err)
		return nil, err
	}
	moviereviews.LogQueryExecuted(logger, "scan_all", len(reviews), time.Since(start))

	if len(reviews) == 0 {
		moviereviews.LogNotFound(logger, "scan_all")
		return nil, moviereviews.NewReviewError(moviereviews.ErrCodeNotFound, "Movie reviews not found")
	}
	return reviews, nil
}

// GetMovieReviews returns the reviews of a movie, narrowed by an optional
// reviewer-name-or-year segment and minimum rating
func (s *ReviewService) GetMovieReviews(ctx context.Context, movieID int, reviewerNameOrYear string, minRating *float64) ([]*moviereviews.Review, error) {
	if movieID <= 0 {
		return nil, moviereviews.MissingParameter("movieId")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reviews, err := s.query(ctx, "movie_reviews", planner.MovieReviewsPlan(movieID, reviewerNameOrYear, minRating))
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		moviereviews.LogNotFound(s.log(ctx), "movie_reviews")
		return nil, moviereviews.NewReviewError(moviereviews.ErrCodeNotFound, "Movie reviews not found")
	}
	return reviews, nil
}

// GetReviewerReviews returns every review written by reviewerName
func (s *ReviewService) GetReviewerReviews(ctx context.Context, reviewerName string) ([]*moviereviews.Review, error) {
	if strings.TrimSpace(reviewerName) == "" {
		return nil, moviereviews.MissingParameter("reviewerName")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	logger := s.log(ctx)

	plan := planner.ReviewerScanPlan(reviewerName)
	moviereviews.LogQueryPlanned(logger, plan)

	start := time.Now()
	reviews, err := s.store.ScanReviews(ctx, plan)
	if err != nil {
		moviereviews.LogStoreError(logger, "reviewer_reviews", err)
		return nil, err
	}
	moviereviews.LogQueryExecuted(logger, "reviewer_reviews", len(reviews), time.Since(start))

	if len(reviews) == 0 {
		moviereviews.LogNotFound(logger, "reviewer_reviews")
		return nil, moviereviews.NewReviewError(moviereviews.ErrCodeNotFound, "Movie reviews not found from the given reviewer name")
	}
	return reviews, nil
}

// AddReview stores a new review. The review must already be validated.
func (s *ReviewService) AddReview(ctx context.Context, review *moviereviews.Review) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	logger := s.log(ctx)

	if err := s.store.PutReview(ctx, review); err != nil {
		if rerr := moviereviews.AsReviewError(err); rerr.Code == moviereviews.ErrCodeConflict {
			return rerr
		}
		moviereviews.LogStoreError(logger, "put_review", err)
		return err
	}

	moviereviews.LogReviewAdded(logger, review.Key(), review.ReviewerName)
	return nil
}

// UpdateReviewContent replaces the content of the review reviewerName wrote
// for movieID
func (s *ReviewService) UpdateReviewContent(ctx context.Context, movieID int, reviewerName, content string) (*moviereviews.Review, error) {
	if movieID <= 0 {
		return nil, moviereviews.MissingParameter("movieId")
	}
	if strings.TrimSpace(reviewerName) == "" {
		return nil, moviereviews.MissingParameter("reviewerName")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	logger := s.log(ctx)

	review, err := s.findReview(ctx, movieID, reviewerName, s.config.UpdateSelection)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateReviewContent(ctx, review.Key(), reviewerName, content)
	if err != nil {
		if !moviereviews.IsNotFound(err) {
			moviereviews.LogStoreError(logger, "update_review", err)
		}
		return nil, err
	}

	moviereviews.LogReviewUpdated(logger, updated.Key(), reviewerName)
	return updated, nil
}

// GetTranslatedReview returns the review reviewerName wrote for movieID with
// its content translated to language. An empty translation keeps the
// original content.
func (s *ReviewService) GetTranslatedReview(ctx context.Context, movieID int, reviewerName, language string) (*moviereviews.Review, error) {
	if movieID <= 0 {
		return nil, moviereviews.MissingParameter("movieId")
	}
	if strings.TrimSpace(reviewerName) == "" {
		return nil, moviereviews.MissingParameter("reviewerName")
	}
	if s.translator == nil {
		return nil, moviereviews.NewReviewError(moviereviews.ErrCodeInternalError, "Translation is not configured")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	logger := s.log(ctx)

	review, err := s.findReview(ctx, movieID, reviewerName, s.config.TranslationSelection)
	if err != nil {
		return nil, err
	}

	translated, err := s.translator.Translate(ctx, review.Content, s.config.SourceLanguage, language)
	if err != nil {
		logger.Error().Err(err).Str("review_key", review.Key().String()).Msg("Translation failed")
		return nil, err
	}

	result := *review
	if strings.TrimSpace(translated) == "" {
		moviereviews.LogTranslationFallback(logger, review.Key(), language)
	} else {
		result.Content = translated
		moviereviews.LogReviewTranslated(logger, review.Key(), s.config.SourceLanguage, language)
	}
	return &result, nil
}

// findReview queries movie+reviewer and applies the selection policy
func (s *ReviewService) findReview(ctx context.Context, movieID int, reviewerName string, policy moviereviews.SelectionPolicy) (*moviereviews.Review, error) {
	reviews, err := s.query(ctx, "reviewer_review", planner.ReviewerReviewPlan(movieID, reviewerName))
	if err != nil {
		return nil, err
	}

	review, err := moviereviews.SelectReview(reviews, policy)
	if err != nil {
		if moviereviews.IsNotFound(err) {
			moviereviews.LogNotFound(s.log(ctx), "reviewer_review")
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) query(ctx context.Context, operation string, plan *planner.Plan) ([]*moviereviews.Review, error) {
	logger := s.log(ctx)
	moviereviews.LogQueryPlanned(logger, plan)

	start := time.Now()
	reviews, err := s.store.QueryReviews(ctx, plan)
	if err != nil {
		moviereviews.LogStoreError(logger, operation, err)
		return nil, err
	}
	moviereviews.LogQueryExecuted(logger, operation, len(reviews), time.Since(start))
	return reviews, nil
}

// log prefers a request-scoped logger carried by ctx
func (s *ReviewService) log(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.logger
}

func (s *ReviewService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.RequestTimeout)
}
