package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workshop-sidekick/internal/domain"
	"workshop-sidekick/internal/usecase"
)

// ChatService answers one participant message.
type ChatService interface {
	Chat(ctx context.Context, in usecase.ChatInput) usecase.ChatOutput
}

// RosterService reconstructs per-session participant summaries.
type RosterService interface {
	ListParticipants(ctx context.Context, sessionID string) usecase.ParticipantsResult
}

// AnalyticsService computes per-session engagement reports.
type AnalyticsService interface {
	Analyze(ctx context.Context, sessionID string) domain.EngagementReport
}

// StatsService combines roster and analytics into workshop statistics.
type StatsService interface {
	Snapshot(ctx context.Context, sessionID string) usecase.WorkshopStats
	Summarize(ctx context.Context, sessionID string) string
}

// Notifier publishes workshop messages.
type Notifier interface {
	PublishTopic(ctx context.Context, topicARN, message string) (string, error)
	PublishDirect(ctx context.Context, recipients []string, message string) ([]string, error)
}

// Pinger verifies connectivity to the inference backend. Wired only when the
// debug health check is enabled.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP boundary. It holds no state of its own; every request
// is a synchronous pass-through to the services.
type Server struct {
	chat      ChatService
	roster    RosterService
	analytics AnalyticsService
	stats     StatsService
	notifier  Notifier
	pinger    Pinger
}

func New(chat ChatService, roster RosterService, analytics AnalyticsService, stats StatsService, notifier Notifier, pinger Pinger) *Server {
	return &Server{
		chat:      chat,
		roster:    roster,
		analytics: analytics,
		stats:     stats,
		notifier:  notifier,
		pinger:    pinger,
	}
}

// Router builds the gin engine. Unmatched routes get gin's default 404;
// handler panics become 500 via the recovery middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.POST("/chat", s.handleChat)

	sessions := r.Group("/sessions")
	{
		sessions.GET("/:id/participants", s.handleParticipants)
		sessions.GET("/:id/analytics", s.handleAnalytics)
		sessions.GET("/:id/stats", s.handleStats)
		sessions.GET("/:id/summary", s.handleSummary)
	}

	r.POST("/notify", s.handleNotify)
	return r
}

type chatRequest struct {
	Message     string `json:"message" binding:"required"`
	SessionID   string `json:"session_id"`
	Participant string `json:"participant_name"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out := s.chat.Chat(c.Request.Context(), usecase.ChatInput{
		Participant: req.Participant,
		Message:     req.Message,
		SessionID:   req.SessionID,
	})
	c.JSON(http.StatusOK, chatResponse{Response: out.Response, SessionID: out.SessionID})
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	if s.pinger != nil {
		if err := s.pinger.Ping(c.Request.Context()); err != nil {
			body["bedrock_connected"] = false
			body["bedrock_status"] = err.Error()
		} else {
			body["bedrock_connected"] = true
			body["bedrock_status"] = "Connected"
		}
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(chatPage))
}

func (s *Server) handleParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, s.roster.ListParticipants(c.Request.Context(), c.Param("id")))
}

func (s *Server) handleAnalytics(c *gin.Context) {
	report := s.analytics.Analyze(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.Snapshot(c.Request.Context(), c.Param("id")))
}

func (s *Server) handleSummary(c *gin.Context) {
	sessionID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"summary":    s.stats.Summarize(c.Request.Context(), sessionID),
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	})
}

type notifyRequest struct {
	Message    string   `json:"message" binding:"required"`
	TopicARN   string   `json:"topic_arn"`
	Recipients []string `json:"recipients"`
}

func (s *Server) handleNotify(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if s.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications are not configured"})
		return
	}

	ts := time.Now().UTC().Format(time.RFC3339Nano)
	switch {
	case req.TopicARN != "":
		id, err := s.notifier.PublishTopic(c.Request.Context(), req.TopicARN, req.Message)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": err.Error(), "timestamp": ts})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "sent", "method": "SNS Topic", "message_id": id, "timestamp": ts})
	case len(req.Recipients) > 0:
		ids, err := s.notifier.PublishDirect(c.Request.Context(), req.Recipients, req.Message)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": err.Error(), "timestamp": ts})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "sent",
			"method":      "Individual SNS",
			"message_ids": ids,
			"recipients":  len(ids),
			"timestamp":   ts,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "no recipients specified (topic_arn or recipients required)",
		})
	}
}
