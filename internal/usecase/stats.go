package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop-sidekick/internal/domain"
)

// WorkshopStats is the combined real-time view of one session.
type WorkshopStats struct {
	SessionInfo     SessionInfo     `json:"session_info"`
	Participation   Participation   `json:"participation"`
	Engagement      EngagementStats `json:"engagement"`
	TechnicalHealth TechnicalHealth `json:"technical_health"`
	Err             string          `json:"error,omitempty"`
}

type SessionInfo struct {
	SessionID       string `json:"session_id"`
	StartTime       string `json:"start_time"`
	CurrentTime     string `json:"current_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
}

type Participation struct {
	CurrentlyJoined   int `json:"currently_joined"`
	TotalParticipants int `json:"total_participants"`
	PeakAttendance    int `json:"peak_attendance"`
}

type EngagementStats struct {
	TotalActivities int `json:"total_activities"`
	QuestionsAsked  int `json:"questions_asked"`
	ChatMessages    int `json:"chat_messages"`
	EngagementScore int `json:"engagement_score"`
}

type TechnicalHealth struct {
	StorageStatus  string `json:"storage_status"`
	DataCollection string `json:"data_collection"`
	LastUpdate     string `json:"last_update"`
}

// Stats composes the roster and analytics views into one snapshot. Both
// reads hit the store independently; there is no shared cache.
type Stats struct {
	roster      *Roster
	analytics   *Analytics
	storageName string
	now         func() time.Time
}

func NewStats(roster *Roster, analytics *Analytics, storageName string) (*Stats, error) {
	if roster == nil {
		return nil, errors.New("usecase: roster must not be nil")
	}
	if analytics == nil {
		return nil, errors.New("usecase: analytics must not be nil")
	}
	return &Stats{
		roster:      roster,
		analytics:   analytics,
		storageName: storageName,
		now:         time.Now,
	}, nil
}

// Snapshot builds the real-time workshop statistics for a session.
func (s *Stats) Snapshot(ctx context.Context, sessionID string) WorkshopStats {
	nowStr := s.now().UTC().Format(time.RFC3339Nano)

	participants := s.roster.ListParticipants(ctx, sessionID)
	report := s.analytics.Analyze(ctx, sessionID)

	stats := WorkshopStats{
		SessionInfo: SessionInfo{
			SessionID:   sessionID,
			StartTime:   nowStr,
			CurrentTime: nowStr,
			Status:      statusActive,
		},
		Participation: Participation{
			CurrentlyJoined:   participants.ActiveCount,
			TotalParticipants: participants.TotalParticipants,
			// With no leave events, peak equals total ever seen.
			PeakAttendance: participants.TotalParticipants,
		},
		Engagement: EngagementStats{
			TotalActivities: report.TotalActivities,
			QuestionsAsked:  report.ActivityBreakdown[domain.ActivityQuestion],
			ChatMessages:    report.ActivityBreakdown[domain.ActivityChatMessage],
			EngagementScore: report.EngagementScore,
		},
		TechnicalHealth: TechnicalHealth{
			StorageStatus:  s.storageName,
			DataCollection: "active",
			LastUpdate:     nowStr,
		},
	}

	if earliest := earliestJoin(participants.Participants); earliest != "" {
		stats.SessionInfo.StartTime = earliest
		if start, err := time.Parse(time.RFC3339Nano, earliest); err == nil {
			stats.SessionInfo.DurationMinutes = int(s.now().UTC().Sub(start).Minutes())
		}
	}

	var errs []string
	if participants.Err != "" {
		errs = append(errs, participants.Err)
	}
	if report.Err != "" {
		errs = append(errs, report.Err)
	}
	stats.Err = strings.Join(errs, "; ")
	return stats
}

// Summarize renders the human-readable engagement summary block.
func (s *Stats) Summarize(ctx context.Context, sessionID string) string {
	participants := s.roster.ListParticipants(ctx, sessionID)
	report := s.analytics.Analyze(ctx, sessionID)

	var b strings.Builder
	b.WriteString("Workshop Engagement Summary\n")
	b.WriteString("==============================\n\n")
	fmt.Fprintf(&b, "Active Participants: %d\n", participants.ActiveCount)
	fmt.Fprintf(&b, "Total Activities: %d\n", report.TotalActivities)
	fmt.Fprintf(&b, "Questions Asked: %d\n", report.ActivityBreakdown[domain.ActivityQuestion])
	fmt.Fprintf(&b, "Technical Issues: %d\n", report.ActivityBreakdown[domain.ActivityTechnicalSupport])
	fmt.Fprintf(&b, "Engagement Score: %d/100\n", report.EngagementScore)

	if len(report.TopParticipants) > 0 {
		b.WriteString("\nTop Participants:\n")
		for _, p := range report.TopParticipants {
			fmt.Fprintf(&b, "- %s (ACTIVE) - activities: %d\n", p.Name, p.Count)
		}
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, r := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if participants.Err != "" || report.Err != "" {
		b.WriteString("\nNote: some engagement data was unavailable.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func earliestJoin(participants []domain.ParticipantSummary) string {
	earliest := ""
	for _, p := range participants {
		if earliest == "" || p.JoinTime < earliest {
			earliest = p.JoinTime
		}
	}
	return earliest
}
