package moviereviews

import "fmt"

// Rating is a review score from 1 to 5
type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

// Valid reports whether the rating is one of the five levels
func (r Rating) Valid() bool {
	return r >= MinRating && r <= MaxRating
}

// Review is a single movie review as stored in the MovieReviews table
type Review struct {
	// Partition key
	MovieID int `json:"movieId" dynamodbav:"movieId" validate:"required,gt=0"`

	// Sort key, formatted as 2006-01-02
	ReviewDate string `json:"reviewDate" dynamodbav:"reviewDate" validate:"required,datetime=2006-01-02"`

	ReviewerName string `json:"reviewerName" dynamodbav:"reviewerName" validate:"required,max=128"`
	Content      string `json:"content" dynamodbav:"content" validate:"required"`
	Rating       Rating `json:"rating" dynamodbav:"rating" validate:"required,min=1,max=5"`
}

// Key returns the composite table key of the review
func (r *Review) Key() ReviewKey {
	return ReviewKey{MovieID: r.MovieID, ReviewDate: r.ReviewDate}
}

// ReviewKey is the composite primary key (movieId, reviewDate)
type ReviewKey struct {
	MovieID    int    `dynamodbav:"movieId"`
	ReviewDate string `dynamodbav:"reviewDate"`
}

// String formats the key for logs and error messages
func (k ReviewKey) String() string {
	return fmt.Sprintf("%d/%s", k.MovieID, k.ReviewDate)
}

// ReviewUpdate is the request body accepted when updating a review
type ReviewUpdate struct {
	Content string `json:"content" validate:"required"`
}

// MovieReviewsQuery holds the query string of the movie reviews routes.
// MinRating is parsed by ParseMinRating.
type MovieReviewsQuery struct {
	MinRating string `query:"minRating"`
}

// TranslationQuery holds the query string of the translation route
type TranslationQuery struct {
	Language string `query:"language" validate:"required,bcp47_language_tag"`
}
