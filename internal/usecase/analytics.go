package usecase

import (
	"context"
	"errors"
	"sort"

	"workshop-sidekick/internal/domain"
	"workshop-sidekick/internal/repository"
)

const topParticipantLimit = 5

// Analytics recomputes the engagement report from the raw activity log on
// every call. It reads the same records as the roster; the duplicate read is
// accepted cost.
type Analytics struct {
	store repository.ActivityStore
}

func NewAnalytics(store repository.ActivityStore) (*Analytics, error) {
	if store == nil {
		return nil, errors.New("usecase: activity store must not be nil")
	}
	return &Analytics{store: store}, nil
}

// Analyze computes the engagement report for a session. A store read failure
// yields a zero-valued report with Err set; it is never raised.
func (a *Analytics) Analyze(ctx context.Context, sessionID string) domain.EngagementReport {
	report := domain.EngagementReport{
		SessionID:         sessionID,
		ActivityBreakdown: map[string]int{},
		TopParticipants:   []domain.ParticipantCount{},
		Recommendations:   []string{},
	}

	recs, err := a.store.Query(ctx, sessionID)
	if err != nil {
		report.Err = newError(ErrorStoreUnavailable, "analytics_read_failed", err).Error()
		return report
	}

	counts := make(map[string]int)
	var firstSeen []string
	for _, rec := range recs {
		activityType := rec.ActivityType
		if activityType == "" {
			activityType = "unknown"
		}
		report.ActivityBreakdown[activityType]++

		if _, seen := counts[rec.Participant]; !seen {
			firstSeen = append(firstSeen, rec.Participant)
		}
		counts[rec.Participant]++
	}

	report.TotalActivities = len(recs)
	report.UniqueParticipants = len(counts)
	report.EngagementScore = engagementScore(report.TotalActivities, report.UniqueParticipants)
	report.TopParticipants = topParticipants(firstSeen, counts)
	report.Recommendations = recommendationsFor(
		report.EngagementScore,
		report.ActivityBreakdown[domain.ActivityQuestion],
		report.ActivityBreakdown[domain.ActivityChatMessage],
	)
	return report
}

// engagementScore combines activity volume and participant breadth into a
// bounded heuristic: min(100, activities*2 + participants*10).
func engagementScore(totalActivities, uniqueParticipants int) int {
	score := totalActivities*2 + uniqueParticipants*10
	if score > 100 {
		return 100
	}
	return score
}

// topParticipants ranks participants by activity count descending, capped at
// five entries. Ties keep first-seen order: firstSeen lists names in the
// order they appeared and the sort is stable.
func topParticipants(firstSeen []string, counts map[string]int) []domain.ParticipantCount {
	ranked := make([]domain.ParticipantCount, 0, len(firstSeen))
	for _, name := range firstSeen {
		ranked = append(ranked, domain.ParticipantCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topParticipantLimit {
		ranked = ranked[:topParticipantLimit]
	}
	return ranked
}
