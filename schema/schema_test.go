package schema

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicko7947/moviereviews"
)

func TestDefinition(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			def, err := Definition(name)
			require.NoError(t, err)

			var parsed map[string]interface{}
			require.NoError(t, json.Unmarshal(def, &parsed))
			assert.Equal(t, "object", parsed["type"])
		})
	}

	_, err := Definition("Nope")
	assert.Error(t, err)
}

func TestDefinition_MovieReviewRequired(t *testing.T) {
	def, err := Definition(MovieReview)
	require.NoError(t, err)

	var parsed struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(def, &parsed))
	assert.ElementsMatch(t, []string{"movieId", "reviewerName", "reviewDate", "content", "rating"}, parsed.Required)
}

func validationError(t *testing.T, err error) *moviereviews.ReviewError {
	t.Helper()
	var re *moviereviews.ReviewError
	require.True(t, errors.As(err, &re), "expected ReviewError, got %v", err)
	return re
}

func TestDecodeBody_Review(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		body    string
		wantErr bool
		field   string
	}{
		{
			name: "valid",
			body: `{"movieId":201,"reviewerName":"NewCritic","reviewDate":"2024-01-05","content":"Fine.","rating":3}`,
		},
		{
			name:    "rating out of range",
			body:    `{"movieId":201,"reviewerName":"NewCritic","reviewDate":"2024-01-05","content":"Fine.","rating":6}`,
			wantErr: true,
			field:   "rating: max",
		},
		{
			name:    "bad date",
			body:    `{"movieId":201,"reviewerName":"NewCritic","reviewDate":"05/01/2024","content":"Fine.","rating":3}`,
			wantErr: true,
			field:   "reviewDate: datetime",
		},
		{
			name:    "missing content",
			body:    `{"movieId":201,"reviewerName":"NewCritic","reviewDate":"2024-01-05","rating":3}`,
			wantErr: true,
			field:   "content: required",
		},
		{
			name:    "wrong type",
			body:    `{"movieId":"201","reviewerName":"NewCritic","reviewDate":"2024-01-05","content":"Fine.","rating":3}`,
			wantErr: true,
		},
		{
			name:    "unknown field",
			body:    `{"movieId":201,"reviewerName":"NewCritic","reviewDate":"2024-01-05","content":"Fine.","rating":3,"extra":true}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var review moviereviews.Review
			err := v.DecodeBody(ctx, []byte(tt.body), &review, MovieReview, "Incorrect type")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, 201, review.MovieID)
				return
			}

			re := validationError(t, err)
			assert.Equal(t, moviereviews.ErrCodeValidation, re.Code)
			assert.Equal(t, "Incorrect type", re.Message)
			assert.NotNil(t, re.Details["schema"])
			if tt.field != "" {
				assert.Contains(t, re.Details["fields"], tt.field)
			}
		})
	}
}

func TestDecodeBody_Empty(t *testing.T) {
	var update moviereviews.ReviewUpdate
	err := NewValidator().DecodeBody(context.Background(), []byte("  "), &update, MovieReviewUpdateAttributes, "Incorrect type")

	re := validationError(t, err)
	assert.Equal(t, "Missing request body", re.Message)
	assert.Nil(t, re.Details)
}

func TestStruct_Queries(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	assert.NoError(t, v.Struct(ctx, &moviereviews.MovieReviewsQuery{}, MovieReviewQueryParams, "bad"))
	assert.NoError(t, v.Struct(ctx, &moviereviews.MovieReviewsQuery{MinRating: "3"}, MovieReviewQueryParams, "bad"))
	// minRating is left to ParseMinRating so both agree on what a number is
	assert.NoError(t, v.Struct(ctx, &moviereviews.MovieReviewsQuery{MinRating: "1e1"}, MovieReviewQueryParams, "bad"))

	assert.NoError(t, v.Struct(ctx, &moviereviews.TranslationQuery{Language: "fr"}, TranslationQueryParams, "bad"))
	assert.NoError(t, v.Struct(ctx, &moviereviews.TranslationQuery{Language: "pt-BR"}, TranslationQueryParams, "bad"))

	err := v.Struct(ctx, &moviereviews.TranslationQuery{}, TranslationQueryParams, "bad")
	re := validationError(t, err)
	assert.Contains(t, re.Details["fields"], "language: required")
}
