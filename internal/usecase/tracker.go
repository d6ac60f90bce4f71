package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"workshop-sidekick/internal/domain"
	"workshop-sidekick/internal/repository"
)

// TrackResult reports the outcome of one activity write. Track never returns
// a Go error: every failure is folded into the result value.
type TrackResult struct {
	Tracked     bool   `json:"tracked"`
	Participant string `json:"participant"`
	Activity    string `json:"activity"`
	Storage     string `json:"storage,omitempty"`
	SessionID   string `json:"session_id"`
	Err         string `json:"error,omitempty"`
}

// Tracker appends activity records to the primary store, degrading to the
// fallback store when the primary is unavailable. There is no idempotency
// key: caller retries can duplicate records.
type Tracker struct {
	primary  repository.ActivityStore
	fallback repository.ActivityStore

	now func() time.Time
}

// NewTracker creates a Tracker. fallback may be nil, in which case primary
// failures are terminal.
func NewTracker(primary, fallback repository.ActivityStore) (*Tracker, error) {
	if primary == nil {
		return nil, errors.New("usecase: primary store must not be nil")
	}
	return &Tracker{
		primary:  primary,
		fallback: fallback,
		now:      time.Now,
	}, nil
}

// Track appends exactly one timestamped activity record.
func (t *Tracker) Track(ctx context.Context, participant, activityType, details, sessionID string) TrackResult {
	rec := domain.ActivityRecord{
		SessionID:    sessionID,
		Timestamp:    t.now().UTC().Format(time.RFC3339Nano),
		Participant:  participant,
		ActivityType: activityType,
		Details:      details,
	}

	res := TrackResult{
		Participant: participant,
		Activity:    activityType,
		SessionID:   sessionID,
	}

	primaryErr := t.primary.Put(ctx, rec)
	if primaryErr == nil {
		res.Tracked = true
		res.Storage = t.primary.Name()
		return res
	}

	if t.fallback == nil {
		res.Err = newError(ErrorStoreUnavailable, "activity_write_failed", primaryErr).Error()
		return res
	}

	slog.Warn("primary activity store unavailable, using fallback",
		"session_id", sessionID, "err", primaryErr)

	if fallbackErr := t.fallback.Put(ctx, rec); fallbackErr != nil {
		res.Err = newError(ErrorStoreUnavailable, "activity_write_failed",
			errors.Join(primaryErr, fallbackErr)).Error()
		return res
	}

	res.Tracked = true
	res.Storage = t.fallback.Name()
	return res
}
