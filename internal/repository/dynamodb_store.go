package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"workshop-sidekick/internal/domain"
)

// dynamodbAPI is the minimal DynamoDB interface required by DynamoStore.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoStore is the primary activity store, backed by a DynamoDB table with
// session_id as the partition key and timestamp as the sort key.
type DynamoStore struct {
	api       dynamodbAPI
	tableName string
}

// NewDynamoStore creates a DynamoStore over the given table.
func NewDynamoStore(api dynamodbAPI, tableName string) (*DynamoStore, error) {
	if api == nil {
		return nil, errors.New("repository: dynamodb api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &DynamoStore{api: api, tableName: tableName}, nil
}

func (s *DynamoStore) Name() string { return "DynamoDB" }

// Put appends one activity record, keyed (session_id, timestamp).
func (s *DynamoStore) Put(ctx context.Context, rec domain.ActivityRecord) error {
	if rec.SessionID == "" || rec.Timestamp == "" {
		return errors.New("repository: Put: session id and timestamp are required")
	}

	_, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      activityItem(rec),
	})
	if err != nil {
		return fmt.Errorf("repository: Put: %w", err)
	}
	return nil
}

// Query returns every record for a session in timestamp order.
func (s *DynamoStore) Query(ctx context.Context, sessionID string) ([]domain.ActivityRecord, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("session_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: sessionID},
		},
		ScanIndexForward: aws.Bool(true),
	}

	out, err := s.api.Query(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("repository: Query: %w", err)
	}

	recs := make([]domain.ActivityRecord, 0, len(out.Items))
	for _, item := range out.Items {
		rec, err := itemToActivity(item)
		if err != nil {
			return nil, fmt.Errorf("repository: Query unmarshal: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func activityItem(rec domain.ActivityRecord) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"session_id":  &types.AttributeValueMemberS{Value: rec.SessionID},
		"timestamp":   &types.AttributeValueMemberS{Value: rec.Timestamp},
		"participant": &types.AttributeValueMemberS{Value: rec.Participant},
		"activity":    &types.AttributeValueMemberS{Value: rec.ActivityType},
	}
	if rec.Details != "" {
		item["details"] = &types.AttributeValueMemberS{Value: rec.Details}
	}
	return item
}

func itemToActivity(item map[string]types.AttributeValue) (domain.ActivityRecord, error) {
	sessionID, err := strAttr(item, "session_id")
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	ts, err := strAttr(item, "timestamp")
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	participant, err := strAttr(item, "participant")
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	activity, err := strAttr(item, "activity")
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	details, _ := strAttr(item, "details") // optional

	return domain.ActivityRecord{
		SessionID:    sessionID,
		Timestamp:    ts,
		Participant:  participant,
		ActivityType: activity,
		Details:      details,
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}
