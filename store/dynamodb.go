package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/sicko7947/moviereviews"
	"github.com/sicko7947/moviereviews/planner"
)

// DynamoDBStore implements moviereviews.ReviewStore using AWS DynamoDB
type DynamoDBStore struct {
	client     DynamoDBClient
	tableName  string
	seedConfig moviereviews.SeedConfig
	logger     zerolog.Logger
}

// DynamoDBStoreOption configures a DynamoDBStore
type DynamoDBStoreOption func(*DynamoDBStore)

// WithSeedConfig sets the batch write configuration
func WithSeedConfig(config moviereviews.SeedConfig) DynamoDBStoreOption {
	return func(s *DynamoDBStore) {
		s.seedConfig = config
	}
}

// WithStoreLogger sets the logger used for store diagnostics
func WithStoreLogger(logger zerolog.Logger) DynamoDBStoreOption {
	return func(s *DynamoDBStore) {
		s.logger = logger
	}
}

// NewDynamoDBStore creates a new DynamoDB-backed review store
func NewDynamoDBStore(client DynamoDBClient, tableName string, opts ...DynamoDBStoreOption) *DynamoDBStore {
	s := &DynamoDBStore{
		client:     client,
		tableName:  tableName,
		seedConfig: moviereviews.DefaultSeedConfig,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TableName returns the backing table name
func (s *DynamoDBStore) TableName() string {
	return s.tableName
}

// Read operations

func (s *DynamoDBStore) QueryReviews(ctx context.Context, plan *planner.Plan) ([]*moviereviews.Review, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if plan.IsScan() {
		return nil, fmt.Errorf("%w: query requires a partition key condition", planner.ErrInvalidPlan)
	}

	values, err := marshalBoundValues(plan)
	if err != nil {
		return nil, err
	}

	var reviews []*moviereviews.Review
	var lastEvaluatedKey map[string]types.AttributeValue

	// Paginate through all results
	for {
		queryInput := &dynamodb.QueryInput{
			TableName:                 aws.String(s.tableName),
			KeyConditionExpression:    aws.String(plan.KeyConditionExpression()),
			ExpressionAttributeValues: values,
		}
		if filter := plan.FilterExpression(); filter != "" {
			queryInput.FilterExpression = aws.String(filter)
		}
		if lastEvaluatedKey != nil {
			queryInput.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Query(ctx, queryInput)
		if err != nil {
			return nil, fmt.Errorf("failed to query reviews: %w", err)
		}

		page, err := unmarshalReviews(result.Items)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return reviews, nil
}

func (s *DynamoDBStore) ScanReviews(ctx context.Context, plan *planner.Plan) ([]*moviereviews.Review, error) {
	if plan == nil {
		plan = planner.AllReviewsPlan()
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if !plan.IsScan() {
		return nil, fmt.Errorf("%w: scan does not accept key conditions", planner.ErrInvalidPlan)
	}

	values, err := marshalBoundValues(plan)
	if err != nil {
		return nil, err
	}

	var reviews []*moviereviews.Review
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		scanInput := &dynamodb.ScanInput{
			TableName: aws.String(s.tableName),
		}
		if filter := plan.FilterExpression(); filter != "" {
			scanInput.FilterExpression = aws.String(filter)
			scanInput.ExpressionAttributeValues = values
		}
		if lastEvaluatedKey != nil {
			scanInput.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Scan(ctx, scanInput)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviews: %w", err)
		}

		page, err := unmarshalReviews(result.Items)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return reviews, nil
}

// Write operations

func (s *DynamoDBStore) PutReview(ctx context.Context, review *moviereviews.Review) error {
	item, err := attributevalue.MarshalMap(review)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name(AttrPartitionKey)).
		And(expression.AttributeNotExists(expression.Name(AttrSortKey)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build put condition: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(s.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("review %s: %w", review.Key(), moviereviews.ErrConflict)
		}
		return fmt.Errorf("failed to put review: %w", err)
	}

	return nil
}

func (s *DynamoDBStore) UpdateReviewContent(ctx context.Context, key moviereviews.ReviewKey, reviewerName, content string) (*moviereviews.Review, error) {
	keyItem, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review key: %w", err)
	}

	update := expression.Set(expression.Name(AttrContent), expression.Value(content))
	cond := expression.Name(AttrReviewerName).Equal(expression.Value(reviewerName))
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(cond).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       keyItem,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		// Either the key does not exist or it belongs to another reviewer
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("review %s by %s: %w", key, reviewerName, moviereviews.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	var review moviereviews.Review
	if err := attributevalue.UnmarshalMap(result.Attributes, &review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal review: %w", err)
	}

	return &review, nil
}

// BatchPutReviews writes reviews in BatchWriteItem chunks, retrying
// unprocessed items with backoff.
func (s *DynamoDBStore) BatchPutReviews(ctx context.Context, reviews []*moviereviews.Review) error {
	batchSize := s.seedConfig.BatchSize
	if batchSize <= 0 || batchSize > maxBatchWriteItems {
		batchSize = maxBatchWriteItems
	}

	for start := 0; start < len(reviews); start += batchSize {
		end := start + batchSize
		if end > len(reviews) {
			end = len(reviews)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, review := range reviews[start:end] {
			item, err := attributevalue.MarshalMap(review)
			if err != nil {
				return fmt.Errorf("failed to marshal review %s: %w", review.Key(), err)
			}
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := s.writeBatch(ctx, requests); err != nil {
			return err
		}
	}

	return nil
}

func (s *DynamoDBStore) writeBatch(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.tableName: requests}

	for attempt := 0; ; attempt++ {
		if delay := moviereviews.CalculateBackoff(s.seedConfig.RetryDelayMs, attempt, s.seedConfig.RetryBackoff); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("failed to batch write reviews: %w", err)
		}

		if len(result.UnprocessedItems[s.tableName]) == 0 {
			return nil
		}
		if attempt >= s.seedConfig.MaxRetries {
			return fmt.Errorf("failed to batch write reviews: %d items unprocessed after %d retries",
				len(result.UnprocessedItems[s.tableName]), attempt)
		}

		s.logger.Warn().
			Int("unprocessed", len(result.UnprocessedItems[s.tableName])).
			Int("attempt", attempt+1).
			Msg("Retrying unprocessed batch items")
		pending = result.UnprocessedItems
	}
}

// Table operations

// EnsureTable creates the table when it does not exist and waits until it is active
func (s *DynamoDBStore) EnsureTable(ctx context.Context, timeout time.Duration) (bool, error) {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err == nil {
		return false, nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("failed to describe table: %w", err)
	}

	if _, err := s.client.CreateTable(ctx, CreateTableInput(s.tableName)); err != nil {
		return false, fmt.Errorf("failed to create table: %w", err)
	}

	// Wait for table to be active
	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	}, timeout); err != nil {
		return true, fmt.Errorf("failed waiting for table: %w", err)
	}

	return true, nil
}

func marshalBoundValues(plan *planner.Plan) (map[string]types.AttributeValue, error) {
	bound := plan.BoundValues()
	if len(bound) == 0 {
		return nil, nil
	}

	values := make(map[string]types.AttributeValue, len(bound))
	for token, v := range bound {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bound value %s: %w", token, err)
		}
		values[token] = av
	}
	return values, nil
}

func unmarshalReviews(items []map[string]types.AttributeValue) ([]*moviereviews.Review, error) {
	reviews := make([]*moviereviews.Review, 0, len(items))
	for _, item := range items {
		var review moviereviews.Review
		if err := attributevalue.UnmarshalMap(item, &review); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review: %w", err)
		}
		reviews = append(reviews, &review)
	}
	return reviews, nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// Verify interface compliance
var _ moviereviews.ReviewStore = (*DynamoDBStore)(nil)
