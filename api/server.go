// Package api exposes the review service over HTTP using fiber.
package api

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/auth"
	"github.com/sicko7947/moviereviews/schema"
)

// ReviewService is the set of operations served by the API
type ReviewService interface {
	ListAllReviews(ctx context.Context) ([]*moviereviews.Review, error)
	GetMovieReviews(ctx context.Context, movieID int, reviewerNameOrYear string, minRating *float64) ([]*moviereviews.Review, error)
	GetReviewerReviews(ctx context.Context, reviewerName string) ([]*moviereviews.Review, error)
	AddReview(ctx context.Context, review *moviereviews.Review) error
	UpdateReviewContent(ctx context.Context, movieID int, reviewerName, content string) (*moviereviews.Review, error)
	GetTranslatedReview(ctx context.Context, movieID int, reviewerName, language string) (*moviereviews.Review, error)
}

// Server holds the fiber app and its collaborators
type Server struct {
	app        *fiber.App
	service    ReviewService
	validator  *schema.Validator
	authorizer auth.Authorizer
	logger     zerolog.Logger
	name       string

	invocations invocations
}

// ServerOption configures the server
type ServerOption func(*Server)

// WithLogger sets the base request logger
func WithLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAuthorizer protects the write routes. Without one they are open.
func WithAuthorizer(authorizer auth.Authorizer) ServerOption {
	return func(s *Server) {
		s.authorizer = authorizer
	}
}

// WithServiceName sets the name reported by /health
func WithServiceName(name string) ServerOption {
	return func(s *Server) {
		s.name = name
	}
}

// NewServer creates the fiber app with all middleware and routes registered
func NewServer(service ReviewService, opts ...ServerOption) *Server {
	s := &Server{
		service:   service,
		validator: schema.NewValidator(),
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger().
			Level(zerolog.InfoLevel),
		name: "moviereviews",
	}

	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:      s.name,
		UnescapePath: true,
		ErrorHandler: s.handleError,
	})
	s.registerRoutes()

	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server, waiting up to timeout for in-flight requests
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}
