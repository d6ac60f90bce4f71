package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"workshop-sidekick/internal/domain"
)

// logsAPI is the minimal CloudWatch Logs interface required by LogStore.
type logsAPI interface {
	CreateLogGroup(ctx context.Context, in *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
	GetLogEvents(ctx context.Context, in *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

// LogStore is the degraded-mode activity store: one CloudWatch Logs stream
// per session, one JSON-encoded record per log event.
type LogStore struct {
	api      logsAPI
	logGroup string
}

// NewLogStore creates a LogStore writing under the given log group.
func NewLogStore(api logsAPI, logGroup string) (*LogStore, error) {
	if api == nil {
		return nil, errors.New("repository: logs api must not be nil")
	}
	if strings.TrimSpace(logGroup) == "" {
		return nil, errors.New("repository: log group must not be empty")
	}
	return &LogStore{api: api, logGroup: logGroup}, nil
}

func (s *LogStore) Name() string { return "CloudWatch Logs" }

// Put appends one activity record as a log event, creating the group and the
// per-session stream on first use.
func (s *LogStore) Put(ctx context.Context, rec domain.ActivityRecord) error {
	if rec.SessionID == "" {
		return errors.New("repository: Put: session id is required")
	}
	if err := s.ensureStream(ctx, rec.SessionID); err != nil {
		return fmt.Errorf("repository: Put: %w", err)
	}

	msg, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("repository: Put marshal: %w", err)
	}

	_, err = s.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(s.logGroup),
		LogStreamName: aws.String(rec.SessionID),
		LogEvents: []cwtypes.InputLogEvent{
			{
				Message:   aws.String(string(msg)),
				Timestamp: aws.Int64(time.Now().UnixMilli()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("repository: Put log events: %w", err)
	}
	return nil
}

// Query reads the session stream back into activity records. Malformed
// events are skipped; a missing stream reads as an empty session.
func (s *LogStore) Query(ctx context.Context, sessionID string) ([]domain.ActivityRecord, error) {
	out, err := s.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(s.logGroup),
		LogStreamName: aws.String(sessionID),
		StartFromHead: aws.Bool(true),
	})
	if err != nil {
		var notFound *cwtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: Query log events: %w", err)
	}

	recs := make([]domain.ActivityRecord, 0, len(out.Events))
	for _, ev := range out.Events {
		if ev.Message == nil {
			continue
		}
		var rec domain.ActivityRecord
		if err := json.Unmarshal([]byte(*ev.Message), &rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *LogStore) ensureStream(ctx context.Context, sessionID string) error {
	_, err := s.api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(s.logGroup),
	})
	if err != nil && !alreadyExists(err) {
		return fmt.Errorf("create log group: %w", err)
	}

	_, err = s.api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(s.logGroup),
		LogStreamName: aws.String(sessionID),
	})
	if err != nil && !alreadyExists(err) {
		return fmt.Errorf("create log stream: %w", err)
	}
	return nil
}

func alreadyExists(err error) bool {
	var exists *cwtypes.ResourceAlreadyExistsException
	return errors.As(err, &exists)
}
