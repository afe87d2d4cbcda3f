package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sicko7947/moviereviews"
)

// Validator checks request bodies and query strings against struct tags and
// reports failures together with the matching schema definition.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator reporting fields by their JSON or query name
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return &Validator{validate: v}
}

// DecodeBody strictly decodes a JSON body into dst and validates it.
// Unknown fields and type mismatches are reported like tag failures.
func (v *Validator) DecodeBody(ctx context.Context, body []byte, dst interface{}, definition, message string) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return moviereviews.NewReviewError(moviereviews.ErrCodeValidation, "Missing request body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return v.Fail(definition, message, err)
	}

	return v.Struct(ctx, dst, definition, message)
}

// Struct validates an already populated value
func (v *Validator) Struct(ctx context.Context, value interface{}, definition, message string) error {
	if err := v.validate.StructCtx(ctx, value); err != nil {
		return v.Fail(definition, message, err)
	}
	return nil
}

// Fail reports cause as a validation error carrying the schema definition
func (v *Validator) Fail(definition, message string, cause error) error {
	def, err := Definition(definition)
	if err != nil {
		return moviereviews.WrapReviewError(moviereviews.ErrCodeInternalError, "Internal error", err)
	}

	details := map[string]interface{}{
		"schema": def,
	}
	if fields := fieldErrors(cause); len(fields) > 0 {
		details["fields"] = fields
	}

	return moviereviews.WrapReviewError(moviereviews.ErrCodeValidation, message, cause).WithDetails(details)
}

func fieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s: type", typeErr.Field)}
	}
	return nil
}
