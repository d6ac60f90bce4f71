package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"workshop-sidekick/internal/domain"
)

func mustNewStats(t *testing.T, store *fakeStore) *Stats {
	t.Helper()
	roster := mustNewRoster(t, store)
	analytics := mustNewAnalytics(t, store)
	stats, err := NewStats(roster, analytics, store.Name())
	require.NoError(t, err)
	return stats
}

func TestSnapshot_CombinesRosterAndAnalytics(t *testing.T) {
	store := &fakeStore{name: "DynamoDB", recs: []domain.ActivityRecord{
		rec("2026-08-25T10:00:00Z", "Alice", "question"),
		rec("2026-08-25T10:10:00Z", "Bob", "chat_message"),
		rec("2026-08-25T10:20:00Z", "Alice", "chat_message"),
	}}
	stats := mustNewStats(t, store)
	stats.now = func() time.Time {
		return time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	}

	got := stats.Snapshot(context.Background(), "s1")
	require.Empty(t, got.Err)
	require.Equal(t, "s1", got.SessionInfo.SessionID)
	require.Equal(t, "2026-08-25T10:00:00Z", got.SessionInfo.StartTime)
	require.Equal(t, 30, got.SessionInfo.DurationMinutes)
	require.Equal(t, "active", got.SessionInfo.Status)

	require.Equal(t, 2, got.Participation.TotalParticipants)
	require.Equal(t, 2, got.Participation.CurrentlyJoined)
	require.Equal(t, 2, got.Participation.PeakAttendance)

	require.Equal(t, 3, got.Engagement.TotalActivities)
	require.Equal(t, 1, got.Engagement.QuestionsAsked)
	require.Equal(t, 2, got.Engagement.ChatMessages)
	require.Equal(t, 26, got.Engagement.EngagementScore)

	require.Equal(t, "DynamoDB", got.TechnicalHealth.StorageStatus)
	require.Equal(t, "active", got.TechnicalHealth.DataCollection)
}

func TestSnapshot_EmptySession(t *testing.T) {
	stats := mustNewStats(t, &fakeStore{})

	got := stats.Snapshot(context.Background(), "s1")
	require.Empty(t, got.Err)
	require.Zero(t, got.SessionInfo.DurationMinutes)
	require.Zero(t, got.Participation.TotalParticipants)
	require.Zero(t, got.Engagement.EngagementScore)
}

func TestSnapshot_SurfacesReadFailures(t *testing.T) {
	stats := mustNewStats(t, &fakeStore{queryErr: errors.New("store down")})

	got := stats.Snapshot(context.Background(), "s1")
	require.Contains(t, got.Err, "store down")
	require.Zero(t, got.Participation.TotalParticipants)
}

func TestSummarize_RendersEngagementBlock(t *testing.T) {
	store := &fakeStore{recs: []domain.ActivityRecord{
		rec("t1", "Alice", "question"),
		rec("t2", "Alice", "technical_support"),
		rec("t3", "Bob", "chat_message"),
	}}
	stats := mustNewStats(t, store)

	summary := stats.Summarize(context.Background(), "s1")
	require.Contains(t, summary, "Workshop Engagement Summary")
	require.Contains(t, summary, "Active Participants: 2")
	require.Contains(t, summary, "Total Activities: 3")
	require.Contains(t, summary, "Questions Asked: 1")
	require.Contains(t, summary, "Technical Issues: 1")
	require.Contains(t, summary, "Engagement Score: 26/100")
	require.Contains(t, summary, "- Alice (ACTIVE) - activities: 2")
	require.Contains(t, summary, "Recommendations:")
}

func TestSummarize_NotesUnavailableData(t *testing.T) {
	stats := mustNewStats(t, &fakeStore{queryErr: errors.New("store down")})

	summary := stats.Summarize(context.Background(), "s1")
	require.Contains(t, summary, "some engagement data was unavailable")
}

func TestNewStats_Validation(t *testing.T) {
	store := &fakeStore{}
	roster := mustNewRoster(t, store)
	analytics := mustNewAnalytics(t, store)

	_, err := NewStats(nil, analytics, "x")
	require.Error(t, err)
	_, err = NewStats(roster, nil, "x")
	require.Error(t, err)
}
