package api

import (
	"errors"

	"github.com/aws/smithy-go"
	"github.com/gofiber/fiber/v3"

	"github.com/sicko7947/moviereviews"
)

func respondData(c fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

func respondMessage(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// handleError is the fiber error handler. It writes the JSON body matching
// the error's code.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"Message": fe.Message})
	}

	re := moviereviews.AsReviewError(err)
	status := re.HTTPStatus()

	switch {
	case re.Code == moviereviews.ErrCodeValidation:
		body := fiber.Map{"message": re.Message}
		if def, ok := re.Details["schema"]; ok {
			body["schema"] = def
		}
		return c.Status(status).JSON(body)

	case re.Code == moviereviews.ErrCodeUnauthorized:
		return c.Status(status).JSON(fiber.Map{"message": re.Message})

	case status >= fiber.StatusInternalServerError:
		return c.Status(status).JSON(fiber.Map{"error": serializeError(err)})

	default:
		body := fiber.Map{"Message": re.Message}
		if matches, ok := re.Details["matches"]; ok {
			body["matches"] = matches
		}
		return c.Status(status).JSON(body)
	}
}

// serializeError exposes the AWS error code and operation when the cause
// came from an SDK call
func serializeError(err error) fiber.Map {
	body := fiber.Map{"message": err.Error()}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		body["code"] = apiErr.ErrorCode()
		body["message"] = apiErr.ErrorMessage()
		body["fault"] = apiErr.ErrorFault().String()
	}

	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		body["service"] = opErr.Service()
		body["operation"] = opErr.Operation()
	}

	return body
}
