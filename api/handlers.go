package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/schema"
)

const (
	msgReviewSchema = "Incorrect type. Must match Movie Review schema"
	msgUpdateSchema = "Incorrect type. Must match Movie Review update request attribute requirements. See schema"
	msgQuerySchema  = "Incorrect type. Must match Query parameters schema"
)

// handleListAllReviews returns every review
func (s *Server) handleListAllReviews(c fiber.Ctx) error {
	reviews, err := s.service.ListAllReviews(c.Context())
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, reviews)
}

// handleAddReview creates a review from the request body
func (s *Server) handleAddReview(c fiber.Ctx) error {
	var review moviereviews.Review
	if err := s.validator.DecodeBody(c.Context(), c.Body(), &review, schema.MovieReview, msgReviewSchema); err != nil {
		return err
	}

	if err := s.service.AddReview(c.Context(), &review); err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusCreated, "Movie Review added")
}

// handleGetMovieReviews serves both the movie route and the
// reviewer-name-or-year route
func (s *Server) handleGetMovieReviews(c fiber.Ctx) error {
	movieID, err := moviereviews.ParseMovieID(c.Params("movieId"))
	if err != nil {
		return err
	}

	query := moviereviews.MovieReviewsQuery{MinRating: c.Query("minRating")}
	if err := s.validator.Struct(c.Context(), &query, schema.MovieReviewQueryParams, msgQuerySchema); err != nil {
		return err
	}
	minRating, err := moviereviews.ParseMinRating(query.MinRating)
	if err != nil {
		return s.validator.Fail(schema.MovieReviewQueryParams, msgQuerySchema, err)
	}

	reviews, err := s.service.GetMovieReviews(c.Context(), movieID, c.Params("reviewerNameOrYear"), minRating)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, reviews)
}

// handleUpdateReview replaces the content of a reviewer's review
func (s *Server) handleUpdateReview(c fiber.Ctx) error {
	movieID, err := moviereviews.ParseMovieID(c.Params("movieId"))
	if err != nil {
		return err
	}
	reviewerName := c.Params("reviewerName")
	if reviewerName == "" {
		return moviereviews.MissingParameter("reviewerName")
	}

	var update moviereviews.ReviewUpdate
	if err := s.validator.DecodeBody(c.Context(), c.Body(), &update, schema.MovieReviewUpdateAttributes, msgUpdateSchema); err != nil {
		return err
	}

	if _, err := s.service.UpdateReviewContent(c.Context(), movieID, reviewerName, update.Content); err != nil {
		return err
	}
	return respondMessage(c, fiber.StatusOK, "Movie Review updated")
}

// handleGetReviewerReviews returns all reviews by a reviewer
func (s *Server) handleGetReviewerReviews(c fiber.Ctx) error {
	reviews, err := s.service.GetReviewerReviews(c.Context(), c.Params("reviewerName"))
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, reviews)
}

// handleGetTranslatedReview returns a review with its content translated
func (s *Server) handleGetTranslatedReview(c fiber.Ctx) error {
	movieID, err := moviereviews.ParseMovieID(c.Params("movieId"))
	if err != nil {
		return err
	}
	reviewerName := c.Params("reviewerName")
	if reviewerName == "" {
		return moviereviews.MissingParameter("reviewerName")
	}

	query := moviereviews.TranslationQuery{Language: c.Query("language")}
	if err := s.validator.Struct(c.Context(), &query, schema.TranslationQueryParams, msgQuerySchema); err != nil {
		return err
	}

	review, err := s.service.GetTranslatedReview(c.Context(), movieID, reviewerName, query.Language)
	if err != nil {
		return err
	}
	return respondData(c, fiber.StatusOK, review)
}
