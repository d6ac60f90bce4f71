package usecase

import (
	"context"
	"errors"
	"time"

	"workshop-sidekick/internal/domain"
	"workshop-sidekick/internal/repository"
)

// statusActive is the only participant status the roster reports: there is
// no heartbeat or timeout model, so everyone ever seen stays active.
const statusActive = "active"

// ParticipantsResult is the reconstructed roster for one session. A store
// read failure yields an empty list with Err set; it is never raised.
type ParticipantsResult struct {
	SessionID         string                      `json:"session_id"`
	TotalParticipants int                         `json:"total_participants"`
	ActiveCount       int                         `json:"active_count"`
	Participants      []domain.ParticipantSummary `json:"participants"`
	Timestamp         string                      `json:"timestamp"`
	Err               string                      `json:"error,omitempty"`
}

// Roster rebuilds per-participant summaries from the activity log on every
// query; nothing is cached between calls.
type Roster struct {
	store repository.ActivityStore
	now   func() time.Time
}

func NewRoster(store repository.ActivityStore) (*Roster, error) {
	if store == nil {
		return nil, errors.New("usecase: activity store must not be nil")
	}
	return &Roster{store: store, now: time.Now}, nil
}

// ListParticipants folds the chronological record stream into one summary
// per distinct participant name: the first record sets join_time, every
// record advances last_activity and increments activity_count.
func (r *Roster) ListParticipants(ctx context.Context, sessionID string) ParticipantsResult {
	res := ParticipantsResult{
		SessionID:    sessionID,
		Participants: []domain.ParticipantSummary{},
		Timestamp:    r.now().UTC().Format(time.RFC3339Nano),
	}

	recs, err := r.store.Query(ctx, sessionID)
	if err != nil {
		res.Err = newError(ErrorStoreUnavailable, "participant_read_failed", err).Error()
		return res
	}

	res.Participants = foldParticipants(recs)
	res.TotalParticipants = len(res.Participants)
	res.ActiveCount = len(res.Participants) // everyone is active
	return res
}

func foldParticipants(recs []domain.ActivityRecord) []domain.ParticipantSummary {
	byName := make(map[string]int, len(recs))
	summaries := make([]domain.ParticipantSummary, 0, len(recs))

	for _, rec := range recs {
		idx, seen := byName[rec.Participant]
		if !seen {
			byName[rec.Participant] = len(summaries)
			summaries = append(summaries, domain.ParticipantSummary{
				Name:          rec.Participant,
				Status:        statusActive,
				JoinTime:      rec.Timestamp,
				LastActivity:  rec.Timestamp,
				ActivityCount: 1,
			})
			continue
		}
		summaries[idx].LastActivity = rec.Timestamp
		summaries[idx].ActivityCount++
	}
	return summaries
}
