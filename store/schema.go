package store

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/sicko7947/moviereviews/planner"
)

// DynamoDB schema constants
const (
	DefaultTableName = "MovieReviews"

	// Key attributes
	AttrPartitionKey = planner.AttrMovieID
	AttrSortKey      = planner.AttrReviewDate

	// Non-key attributes
	AttrReviewerName = planner.AttrReviewerName
	AttrContent      = planner.AttrContent
	AttrRating       = planner.AttrRating

	// BatchWriteItem accepts at most 25 requests
	maxBatchWriteItems = 25
)

// CreateTableInput returns the table definition: movieId (N) partition key,
// reviewDate (S) sort key, on-demand billing.
func CreateTableInput(tableName string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(AttrPartitionKey), AttributeType: types.ScalarAttributeTypeN},
			{AttributeName: aws.String(AttrSortKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(AttrPartitionKey), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(AttrSortKey), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}
