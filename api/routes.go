package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers middleware and all HTTP routes
func (s *Server) registerRoutes() {
	app := s.app

	// Order matters: the logger resolves handler errors into responses so
	// that metrics see the final status
	app.Use(s.invocationContext())
	app.Use(requestID(s.logger))
	app.Use(metrics())
	app.Use(s.requestLogger())
	app.Use(recover.New())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": s.name,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	movies := app.Group("/movies")
	movies.Get("/reviews", s.handleListAllReviews)
	movies.Post("/reviews", s.requireAuth(), s.handleAddReview)
	movies.Get("/:movieId/reviews", s.handleGetMovieReviews)
	movies.Get("/:movieId/reviews/:reviewerNameOrYear", s.handleGetMovieReviews)
	movies.Put("/:movieId/reviews/:reviewerName", s.requireAuth(), s.handleUpdateReview)

	reviews := app.Group("/reviews")
	reviews.Get("/:reviewerName", s.handleGetReviewerReviews)
	reviews.Get("/:reviewerName/:movieId/translation", s.handleGetTranslatedReview)
}
