package domain

// Activity type tags recorded by the chat orchestrator.
const (
	ActivityChatMessage      = "chat_message"
	ActivityQuestion         = "question"
	ActivityTechnicalSupport = "technical_support"
)

// ActivityRecord is one immutable, timestamped fact about a participant
// action. Records are partitioned by session and sorted by timestamp; they
// are never mutated after being written.
type ActivityRecord struct {
	SessionID    string `json:"session_id"`
	Timestamp    string `json:"timestamp"`
	Participant  string `json:"participant"`
	ActivityType string `json:"activity"`
	Details      string `json:"details,omitempty"`
}

// ParticipantSummary is reconstructed from the activity log on every query.
// Status is always "active": there is no session-end or timeout detection.
type ParticipantSummary struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	JoinTime      string `json:"join_time"`
	LastActivity  string `json:"last_activity"`
	ActivityCount int    `json:"activity_count"`
}

// ParticipantCount is one entry of the top-participant ranking.
type ParticipantCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EngagementReport is the derived, ephemeral analytics view of a session.
type EngagementReport struct {
	SessionID          string             `json:"session_id"`
	TotalActivities    int                `json:"total_activities"`
	UniqueParticipants int                `json:"unique_participants"`
	EngagementScore    int                `json:"engagement_score"`
	ActivityBreakdown  map[string]int     `json:"activity_breakdown"`
	TopParticipants    []ParticipantCount `json:"top_participants"`
	Recommendations    []string           `json:"recommendations"`
	Err                string             `json:"error,omitempty"`
}
