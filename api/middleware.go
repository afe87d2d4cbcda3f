package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sicko7947/moviereviews"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "requestID"
	localClaims     = "claims"
)

// requestID assigns each request an ID and a logger carrying it. The logger
// travels in the request context so the service logs with the same ID.
func requestID(base zerolog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(headerRequestID, id)
		c.Locals(localRequestID, id)

		logger := moviereviews.RequestLogger(base, id)
		c.SetContext(logger.WithContext(c.Context()))

		return c.Next()
	}
}

// requestLogger resolves handler errors into responses and logs the outcome
func (s *Server) requestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := s.handleError(c, err); herr != nil {
				return herr
			}
		}

		logger := s.logger
		if l := zerolog.Ctx(c.Context()); l.GetLevel() != zerolog.Disabled {
			logger = *l
		}
		moviereviews.LogRequestCompleted(logger, c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}

// requireAuth rejects requests without a valid session cookie. It is a
// no-op when no authorizer is configured.
func (s *Server) requireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		if s.authorizer == nil {
			return c.Next()
		}

		claims, err := s.authorizer.Authorize(c.Cookies(s.authorizer.CookieName()))
		if err != nil {
			zerolog.Ctx(c.Context()).Warn().Err(err).Msg("Request not authorized")
			return moviereviews.WrapReviewError(moviereviews.ErrCodeUnauthorized, "Unauthorized", err)
		}

		c.Locals(localClaims, claims)
		return c.Next()
	}
}
