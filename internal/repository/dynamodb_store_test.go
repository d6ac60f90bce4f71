package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"workshop-sidekick/internal/domain"
)

type fakeDynamo struct {
	putErr      error
	queryOut    *dynamodb.QueryOutput
	queryErr    error
	lastPutIn   *dynamodb.PutItemInput
	lastQueryIn *dynamodb.QueryInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutIn = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.lastQueryIn = in
	return f.queryOut, f.queryErr
}

func makeActivityItem(sessionID, ts, participant, activity string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"session_id":  &types.AttributeValueMemberS{Value: sessionID},
		"timestamp":   &types.AttributeValueMemberS{Value: ts},
		"participant": &types.AttributeValueMemberS{Value: participant},
		"activity":    &types.AttributeValueMemberS{Value: activity},
	}
}

func mustNewDynamoStore(t *testing.T, db *fakeDynamo) *DynamoStore {
	t.Helper()
	s, err := NewDynamoStore(db, "test-table")
	require.NoError(t, err)
	return s
}

func TestDynamoStorePut_HappyPath(t *testing.T) {
	db := &fakeDynamo{}
	s := mustNewDynamoStore(t, db)

	err := s.Put(context.Background(), domain.ActivityRecord{
		SessionID:    "s1",
		Timestamp:    "2026-08-25T10:00:00Z",
		Participant:  "Alice",
		ActivityType: "question",
		Details:      "asked about ACLs",
	})
	require.NoError(t, err)
	require.NotNil(t, db.lastPutIn)
	require.Equal(t, "test-table", *db.lastPutIn.TableName)
	require.Equal(t, "s1", db.lastPutIn.Item["session_id"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "asked about ACLs", db.lastPutIn.Item["details"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoStorePut_OmitsEmptyDetails(t *testing.T) {
	db := &fakeDynamo{}
	s := mustNewDynamoStore(t, db)

	err := s.Put(context.Background(), domain.ActivityRecord{
		SessionID:    "s1",
		Timestamp:    "2026-08-25T10:00:00Z",
		Participant:  "Alice",
		ActivityType: "question",
	})
	require.NoError(t, err)
	require.NotContains(t, db.lastPutIn.Item, "details")
}

func TestDynamoStorePut_MissingKeys(t *testing.T) {
	s := mustNewDynamoStore(t, &fakeDynamo{})
	err := s.Put(context.Background(), domain.ActivityRecord{Participant: "Alice"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestDynamoStorePut_DynamoError(t *testing.T) {
	db := &fakeDynamo{putErr: errors.New("ProvisionedThroughputExceededException")}
	s := mustNewDynamoStore(t, db)
	err := s.Put(context.Background(), domain.ActivityRecord{
		SessionID: "s1", Timestamp: "2026-08-25T10:00:00Z",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Put")
}

func TestDynamoStoreQuery_HappyPath(t *testing.T) {
	db := &fakeDynamo{
		queryOut: &dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				makeActivityItem("s1", "2026-08-25T10:00:00Z", "Alice", "question"),
				makeActivityItem("s1", "2026-08-25T10:01:00Z", "Bob", "chat_message"),
			},
		},
	}
	s := mustNewDynamoStore(t, db)

	recs, err := s.Query(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Alice", recs[0].Participant)
	require.Equal(t, "chat_message", recs[1].ActivityType)
}

func TestDynamoStoreQuery_KeyCondition(t *testing.T) {
	db := &fakeDynamo{queryOut: &dynamodb.QueryOutput{}}
	s := mustNewDynamoStore(t, db)

	_, err := s.Query(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "session_id = :sid", *db.lastQueryIn.KeyConditionExpression)
	require.True(t, *db.lastQueryIn.ScanIndexForward)
	require.Equal(t, "s1",
		db.lastQueryIn.ExpressionAttributeValues[":sid"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoStoreQuery_EmptyResult(t *testing.T) {
	db := &fakeDynamo{queryOut: &dynamodb.QueryOutput{}}
	s := mustNewDynamoStore(t, db)

	recs, err := s.Query(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestDynamoStoreQuery_QueryError(t *testing.T) {
	db := &fakeDynamo{queryErr: errors.New("ResourceNotFoundException")}
	s := mustNewDynamoStore(t, db)

	_, err := s.Query(context.Background(), "s1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Query")
}

func TestDynamoStoreQuery_MalformedItem(t *testing.T) {
	item := map[string]types.AttributeValue{
		"session_id": &types.AttributeValueMemberS{Value: "s1"},
	}
	db := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}}
	s := mustNewDynamoStore(t, db)

	_, err := s.Query(context.Background(), "s1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "timestamp")
}

func TestDynamoStore_Name(t *testing.T) {
	s := mustNewDynamoStore(t, &fakeDynamo{})
	require.Equal(t, "DynamoDB", s.Name())
}

func TestNewDynamoStore_NilAPI(t *testing.T) {
	_, err := NewDynamoStore(nil, "test-table")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestNewDynamoStore_EmptyTable(t *testing.T) {
	_, err := NewDynamoStore(&fakeDynamo{}, " ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be empty")
}
