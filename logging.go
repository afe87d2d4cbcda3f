package moviereviews

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/sicko7947/moviereviews/planner"
)

// Log event names
const (
	// Query events
	EventQueryPlanned  = "review_query_planned"
	EventQueryExecuted = "review_query_executed"
	EventNotFound      = "review_not_found"

	// Write events
	EventReviewAdded   = "review_added"
	EventReviewUpdated = "review_updated"
	EventReviewsSeeded = "reviews_seeded"

	// Translation events
	EventReviewTranslated    = "review_translated"
	EventTranslationFallback = "translation_fallback"

	// Transport and persistence events
	EventRequestCompleted = "request_completed"
	EventStoreError       = "store_error"
)

// LogQueryPlanned logs the rendered expressions of a plan
func LogQueryPlanned(logger zerolog.Logger, plan *planner.Plan) {
	logger.Debug().
		Str("event", EventQueryPlanned).
		Str("key_condition", plan.KeyConditionExpression()).
		Str("filter", plan.FilterExpression()).
		Interface("values", plan.BoundValues()).
		Msg("Review query planned")
}

// LogQueryExecuted logs the number of items a query or scan returned
func LogQueryExecuted(logger zerolog.Logger, operation string, count int, duration time.Duration) {
	logger.Info().
		Str("event", EventQueryExecuted).
		Str("operation", operation).
		Int("count", count).
		Dur("duration", duration).
		Msg("Review query executed")
}

// LogNotFound logs an empty lookup
func LogNotFound(logger zerolog.Logger, operation string) {
	logger.Info().
		Str("event", EventNotFound).
		Str("operation", operation).
		Msg("No reviews found")
}

// LogReviewAdded logs a created review
func LogReviewAdded(logger zerolog.Logger, key ReviewKey, reviewerName string) {
	logger.Info().
		Str("event", EventReviewAdded).
		Str("review_key", key.String()).
		Str("reviewer_name", reviewerName).
		Msg("Review added")
}

// LogReviewUpdated logs a content update
func LogReviewUpdated(logger zerolog.Logger, key ReviewKey, reviewerName string) {
	logger.Info().
		Str("event", EventReviewUpdated).
		Str("review_key", key.String()).
		Str("reviewer_name", reviewerName).
		Msg("Review updated")
}

// LogReviewsSeeded logs a completed seed run
func LogReviewsSeeded(logger zerolog.Logger, tableName string, count int) {
	logger.Info().
		Str("event", EventReviewsSeeded).
		Str("table", tableName).
		Int("count", count).
		Msg("Reviews seeded")
}

// LogReviewTranslated logs a successful translation
func LogReviewTranslated(logger zerolog.Logger, key ReviewKey, source, target string) {
	logger.Info().
		Str("event", EventReviewTranslated).
		Str("review_key", key.String()).
		Str("source_language", source).
		Str("target_language", target).
		Msg("Review translated")
}

// LogTranslationFallback logs an empty translation replaced by the original text
func LogTranslationFallback(logger zerolog.Logger, key ReviewKey, target string) {
	logger.Warn().
		Str("event", EventTranslationFallback).
		Str("review_key", key.String()).
		Str("target_language", target).
		Msg("Translation empty, returning original content")
}

// LogRequestCompleted logs an HTTP request
func LogRequestCompleted(logger zerolog.Logger, method, route string, status int, duration time.Duration) {
	event := logger.Info()
	if status >= 500 {
		event = logger.Error()
	}
	event.
		Str("event", EventRequestCompleted).
		Str("method", method).
		Str("route", route).
		Int("status", status).
		Dur("duration", duration).
		Msg("Request completed")
}

// LogStoreError logs errors during persistence operations
func LogStoreError(logger zerolog.Logger, operation string, err error) {
	logger.Error().
		Str("event", EventStoreError).
		Str("operation", operation).
		Err(err).
		Msg("Store error")
}

// RequestLogger creates a logger enriched with request context
func RequestLogger(baseLogger zerolog.Logger, requestID string) zerolog.Logger {
	return baseLogger.With().
		Str("request_id", requestID).
		Logger()
}
