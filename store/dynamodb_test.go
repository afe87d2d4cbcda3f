package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/planner"
)

// mockDynamoDBClient implements DynamoDBClient interface for testing
type mockDynamoDBClient struct {
	queryFunc          func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	scanFunc           func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	putItemFunc        func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	updateItemFunc     func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	batchWriteItemFunc func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	createTableFunc    func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	describeTableFunc  func(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

func (m *mockDynamoDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params, optFns...)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (m *mockDynamoDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if m.scanFunc != nil {
		return m.scanFunc(ctx, params, optFns...)
	}
	return &dynamodb.ScanOutput{}, nil
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFunc != nil {
		return m.putItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDBClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockDynamoDBClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if m.batchWriteItemFunc != nil {
		return m.batchWriteItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (m *mockDynamoDBClient) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if m.createTableFunc != nil {
		return m.createTableFunc(ctx, params, optFns...)
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func (m *mockDynamoDBClient) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if m.describeTableFunc != nil {
		return m.describeTableFunc(ctx, params, optFns...)
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func reviewItem(movieID int, date, reviewer string, rating int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"movieId":      &types.AttributeValueMemberN{Value: fmt.Sprint(movieID)},
		"reviewDate":   &types.AttributeValueMemberS{Value: date},
		"reviewerName": &types.AttributeValueMemberS{Value: reviewer},
		"content":      &types.AttributeValueMemberS{Value: "content by " + reviewer},
		"rating":       &types.AttributeValueMemberN{Value: fmt.Sprint(rating)},
	}
}

func TestNewDynamoDBStore(t *testing.T) {
	store := NewDynamoDBStore(&mockDynamoDBClient{}, "test-table")
	require.NotNil(t, store)
	assert.Equal(t, "test-table", store.TableName())

	var _ moviereviews.ReviewStore = store
}

func TestDynamoDBStore_QueryReviews(t *testing.T) {
	var capturedInput *dynamodb.QueryInput

	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			capturedInput = params
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					reviewItem(101, "2023-10-20", "CinemaFan123", 5),
				},
			}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	plan := planner.MovieReviewsPlan(101, "CinemaFan123", moviereviews.ToPtr(3.0))

	reviews, err := store.QueryReviews(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	assert.Equal(t, 101, reviews[0].MovieID)
	assert.Equal(t, "CinemaFan123", reviews[0].ReviewerName)
	assert.Equal(t, moviereviews.Rating(5), reviews[0].Rating)

	require.NotNil(t, capturedInput)
	assert.Equal(t, "test-table", *capturedInput.TableName)
	assert.Equal(t, "movieId = :movieId", *capturedInput.KeyConditionExpression)
	require.NotNil(t, capturedInput.FilterExpression)
	assert.Equal(t, "reviewerName = :reviewerName AND rating > :minRating", *capturedInput.FilterExpression)

	values := capturedInput.ExpressionAttributeValues
	require.Len(t, values, 3)
	assert.Equal(t, "101", values[":movieId"].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "CinemaFan123", values[":reviewerName"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "3", values[":minRating"].(*types.AttributeValueMemberN).Value)
}

func TestDynamoDBStore_QueryReviews_YearPrefix(t *testing.T) {
	var capturedInput *dynamodb.QueryInput

	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			capturedInput = params
			return &dynamodb.QueryOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	reviews, err := store.QueryReviews(context.Background(), planner.MovieReviewsPlan(101, "2023", nil))
	require.NoError(t, err)
	assert.Empty(t, reviews)

	assert.Equal(t, "movieId = :movieId AND begins_with(reviewDate, :year)", *capturedInput.KeyConditionExpression)
	assert.Nil(t, capturedInput.FilterExpression)
	assert.Equal(t, "2023", capturedInput.ExpressionAttributeValues[":year"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoDBStore_QueryReviews_Pagination(t *testing.T) {
	calls := 0
	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			calls++
			if calls == 1 {
				assert.Nil(t, params.ExclusiveStartKey)
				return &dynamodb.QueryOutput{
					Items:            []map[string]types.AttributeValue{reviewItem(105, "2023-10-16", "DirectorFan444", 4)},
					LastEvaluatedKey: map[string]types.AttributeValue{"movieId": &types.AttributeValueMemberN{Value: "105"}},
				}, nil
			}
			assert.NotNil(t, params.ExclusiveStartKey)
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{reviewItem(105, "2023-10-19", "FilmCritic789", 4)},
			}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	reviews, err := store.QueryReviews(context.Background(), planner.MovieReviewsPlan(105, "", nil))
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Len(t, reviews, 2)
}

func TestDynamoDBStore_QueryReviews_InvalidPlan(t *testing.T) {
	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			t.Fatal("Query should not be called for an invalid plan")
			return nil, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")

	_, err := store.QueryReviews(context.Background(), planner.ReviewerScanPlan("FilmCritic789"))
	assert.ErrorIs(t, err, planner.ErrInvalidPlan)
}

func TestDynamoDBStore_QueryReviews_Error(t *testing.T) {
	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return nil, errors.New("dynamodb error")
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	_, err := store.QueryReviews(context.Background(), planner.MovieReviewsPlan(101, "", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query reviews")
}

func TestDynamoDBStore_ScanReviews(t *testing.T) {
	var capturedInput *dynamodb.ScanInput

	client := &mockDynamoDBClient{
		scanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			capturedInput = params
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					reviewItem(103, "2023-10-22", "FilmCritic789", 2),
					reviewItem(104, "2023-10-15", "FilmCritic789", 5),
				},
			}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	reviews, err := store.ScanReviews(context.Background(), planner.ReviewerScanPlan("FilmCritic789"))
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	assert.Equal(t, "reviewerName = :reviewerName", *capturedInput.FilterExpression)
	assert.Equal(t, "FilmCritic789", capturedInput.ExpressionAttributeValues[":reviewerName"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoDBStore_ScanReviews_All(t *testing.T) {
	var capturedInput *dynamodb.ScanInput

	client := &mockDynamoDBClient{
		scanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			capturedInput = params
			return &dynamodb.ScanOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	_, err := store.ScanReviews(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, capturedInput.FilterExpression)
	assert.Nil(t, capturedInput.ExpressionAttributeValues)
}

func TestDynamoDBStore_ScanReviews_RejectsKeyConditions(t *testing.T) {
	store := NewDynamoDBStore(&mockDynamoDBClient{}, "test-table")

	_, err := store.ScanReviews(context.Background(), planner.MovieReviewsPlan(101, "", nil))
	assert.ErrorIs(t, err, planner.ErrInvalidPlan)
}

func TestDynamoDBStore_PutReview(t *testing.T) {
	var capturedInput *dynamodb.PutItemInput

	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			capturedInput = params
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	review := &moviereviews.Review{
		MovieID:      201,
		ReviewDate:   "2024-01-05",
		ReviewerName: "NewCritic",
		Content:      "Fine.",
		Rating:       3,
	}

	require.NoError(t, store.PutReview(context.Background(), review))

	require.NotNil(t, capturedInput)
	assert.Equal(t, "201", capturedInput.Item[AttrPartitionKey].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "2024-01-05", capturedInput.Item[AttrSortKey].(*types.AttributeValueMemberS).Value)
	require.NotNil(t, capturedInput.ConditionExpression)
	assert.Contains(t, *capturedInput.ConditionExpression, "attribute_not_exists")
}

func TestDynamoDBStore_PutReview_Conflict(t *testing.T) {
	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{Message: strPtr("exists")}
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	err := store.PutReview(context.Background(), &moviereviews.Review{MovieID: 101, ReviewDate: "2023-10-20"})
	assert.ErrorIs(t, err, moviereviews.ErrConflict)
}

func TestDynamoDBStore_UpdateReviewContent(t *testing.T) {
	var capturedInput *dynamodb.UpdateItemInput

	client := &mockDynamoDBClient{
		updateItemFunc: func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			capturedInput = params
			item := reviewItem(101, "2023-10-20", "CinemaFan123", 5)
			item["content"] = &types.AttributeValueMemberS{Value: "Updated"}
			return &dynamodb.UpdateItemOutput{Attributes: item}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	key := moviereviews.ReviewKey{MovieID: 101, ReviewDate: "2023-10-20"}

	review, err := store.UpdateReviewContent(context.Background(), key, "CinemaFan123", "Updated")
	require.NoError(t, err)
	assert.Equal(t, "Updated", review.Content)

	require.NotNil(t, capturedInput)
	assert.Equal(t, "101", capturedInput.Key[AttrPartitionKey].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "2023-10-20", capturedInput.Key[AttrSortKey].(*types.AttributeValueMemberS).Value)
	assert.Contains(t, *capturedInput.UpdateExpression, "SET")
	require.NotNil(t, capturedInput.ConditionExpression)
	assert.Equal(t, types.ReturnValueAllNew, capturedInput.ReturnValues)

	// Names and values are bound through the expression builder
	names := make([]string, 0, len(capturedInput.ExpressionAttributeNames))
	for _, n := range capturedInput.ExpressionAttributeNames {
		names = append(names, n)
	}
	assert.ElementsMatch(t, []string{"content", "reviewerName"}, names)
}

func TestDynamoDBStore_UpdateReviewContent_ConditionFailed(t *testing.T) {
	client := &mockDynamoDBClient{
		updateItemFunc: func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{Message: strPtr("The conditional request failed")}
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	_, err := store.UpdateReviewContent(context.Background(),
		moviereviews.ReviewKey{MovieID: 101, ReviewDate: "2023-10-20"}, "Impostor", "x")
	assert.ErrorIs(t, err, moviereviews.ErrNotFound)
}

func TestDynamoDBStore_BatchPutReviews_Chunks(t *testing.T) {
	var batchSizes []int

	client := &mockDynamoDBClient{
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			batchSizes = append(batchSizes, len(params.RequestItems["test-table"]))
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	reviews := make([]*moviereviews.Review, 30)
	for i := range reviews {
		reviews[i] = &moviereviews.Review{MovieID: 1, ReviewDate: fmt.Sprintf("2023-01-%02d", i+1), ReviewerName: "r", Content: "c", Rating: 3}
	}

	store := NewDynamoDBStore(client, "test-table")
	require.NoError(t, store.BatchPutReviews(context.Background(), reviews))

	assert.Equal(t, []int{25, 5}, batchSizes)
}

func TestDynamoDBStore_BatchPutReviews_RetriesUnprocessed(t *testing.T) {
	calls := 0

	client := &mockDynamoDBClient{
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.BatchWriteItemOutput{
					UnprocessedItems: map[string][]types.WriteRequest{
						"test-table": params.RequestItems["test-table"][:1],
					},
				}, nil
			}
			assert.Len(t, params.RequestItems["test-table"], 1)
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	seeds, err := SeedReviews()
	require.NoError(t, err)

	store := NewDynamoDBStore(client, "test-table", WithSeedConfig(moviereviews.SeedConfig{
		BatchSize:    25,
		MaxRetries:   3,
		RetryDelayMs: 1,
		RetryBackoff: moviereviews.BackoffNone,
	}))
	require.NoError(t, store.BatchPutReviews(context.Background(), seeds))
	assert.Equal(t, 2, calls)
}

func TestDynamoDBStore_BatchPutReviews_GivesUp(t *testing.T) {
	client := &mockDynamoDBClient{
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			return &dynamodb.BatchWriteItemOutput{UnprocessedItems: params.RequestItems}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table", WithSeedConfig(moviereviews.SeedConfig{
		BatchSize:    25,
		MaxRetries:   2,
		RetryBackoff: moviereviews.BackoffNone,
	}))

	err := store.BatchPutReviews(context.Background(), []*moviereviews.Review{{MovieID: 1, ReviewDate: "2023-01-01"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unprocessed")
}

func TestDynamoDBStore_EnsureTable_Exists(t *testing.T) {
	client := &mockDynamoDBClient{
		createTableFunc: func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
			t.Fatal("CreateTable should not be called for an existing table")
			return nil, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	created, err := store.EnsureTable(context.Background(), time.Second)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestDynamoDBStore_EnsureTable_Creates(t *testing.T) {
	var createInput *dynamodb.CreateTableInput
	describeCalls := 0

	client := &mockDynamoDBClient{
		describeTableFunc: func(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
			describeCalls++
			if describeCalls == 1 {
				return nil, &types.ResourceNotFoundException{Message: strPtr("not found")}
			}
			return &dynamodb.DescribeTableOutput{
				Table: &types.TableDescription{TableStatus: types.TableStatusActive},
			}, nil
		},
		createTableFunc: func(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
			createInput = params
			return &dynamodb.CreateTableOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	created, err := store.EnsureTable(context.Background(), 5*time.Second)
	require.NoError(t, err)
	assert.True(t, created)

	require.NotNil(t, createInput)
	assert.Equal(t, "test-table", *createInput.TableName)
	assert.Equal(t, types.BillingModePayPerRequest, createInput.BillingMode)
}

func strPtr(s string) *string {
	return &s
}
