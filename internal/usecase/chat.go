package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"workshop-sidekick/internal/content"
	"workshop-sidekick/internal/domain"
)

const (
	defaultMaxTokens   = 1000
	defaultParticipant = "Anonymous"
)

// Completer is the model-inference capability: single synchronous
// request/response, no streaming. An empty model selects the client default.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// ParamGetter resolves configuration parameters, returning the given default
// when a parameter is not defined.
type ParamGetter interface {
	GetParameterOrDefault(ctx context.Context, name, def string) (string, error)
}

// ActivityTracker records participant activity as a side effect of chat.
type ActivityTracker interface {
	Track(ctx context.Context, participant, activityType, details, sessionID string) TrackResult
}

type ChatInput struct {
	Participant string
	Message     string
	SessionID   string
}

type ChatOutput struct {
	Response  string
	SessionID string
}

// ChatService answers participant messages: technical issues from the
// troubleshooting guide, everything else through the model with workshop
// content attached. Every message is also recorded as activity. Failures
// surface as response text, never as a raised error.
type ChatService struct {
	llm         Completer
	tracker     ActivityTracker
	catalog     *content.Catalog
	params      ParamGetter
	paramPrefix string
	maxTokens   int

	cacheMu      sync.RWMutex
	cacheLoaded  bool
	systemPrompt string
	modelID      string
}

func NewChatService(llm Completer, tracker ActivityTracker, catalog *content.Catalog, params ParamGetter, paramPrefix string, maxTokens int) (*ChatService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	if tracker == nil {
		return nil, errors.New("usecase: tracker must not be nil")
	}
	if catalog == nil {
		return nil, errors.New("usecase: catalog must not be nil")
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &ChatService{
		llm:         llm,
		tracker:     tracker,
		catalog:     catalog,
		params:      params,
		paramPrefix: strings.TrimRight(strings.TrimSpace(paramPrefix), "/"),
		maxTokens:   maxTokens,
	}, nil
}

// Chat handles one inbound message.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) ChatOutput {
	participant := strings.TrimSpace(in.Participant)
	if participant == "" {
		participant = defaultParticipant
	}
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = newSessionID()
	}
	out := ChatOutput{SessionID: sessionID}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		out.Response = "Please enter a question about the workshop."
		return out
	}

	// Every inbound message counts toward chat engagement, whatever branch
	// answers it. A failed write degrades analytics, not chat.
	s.tracker.Track(ctx, participant, domain.ActivityChatMessage, message, sessionID)

	if classifyIntent(message) == IntentTechnical {
		issueType := classifyIssueType(message)
		s.tracker.Track(ctx, participant, domain.ActivityTechnicalSupport, message, sessionID)
		out.Response = s.troubleshootingResponse(participant, issueType)
		return out
	}

	s.tracker.Track(ctx, participant, domain.ActivityQuestion, message, sessionID)

	systemPrompt, modelID := s.promptConfig(ctx)
	prompt := buildWorkshopPrompt(
		systemPrompt,
		s.catalog.Context(),
		s.catalog.RelevantContent(message),
		participant,
		message,
	)

	answer, err := s.llm.Complete(ctx, modelID, prompt, s.maxTokens)
	if err != nil {
		// Callers get a describing string, not a distinguishable code.
		out.Response = "I'm having trouble processing your request. Error: " +
			newError(ErrorBackend, "model_inference_failed", err).Error()
		return out
	}

	out.Response = answer
	return out
}

func (s *ChatService) troubleshootingResponse(participant, issueType string) string {
	guide := content.TroubleshootingSteps(issueType)
	return buildTroubleshootingResponse(participant, issueType, guide.Steps,
		s.catalog.TroubleshootingContext(issueType))
}

// promptConfig resolves the system prompt and model id once per process.
// With no parameter store configured the defaults are used.
func (s *ChatService) promptConfig(ctx context.Context) (systemPrompt, modelID string) {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		defer s.cacheMu.RUnlock()
		return s.systemPrompt, s.modelID
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return s.systemPrompt, s.modelID
	}

	s.systemPrompt = defaultSystemPrompt
	s.modelID = ""
	if s.params != nil && s.paramPrefix != "" {
		if v, err := s.params.GetParameterOrDefault(ctx, s.paramPrefix+"/system_prompt", defaultSystemPrompt); err == nil {
			s.systemPrompt = v
		}
		if v, err := s.params.GetParameterOrDefault(ctx, s.paramPrefix+"/config/model_id", ""); err == nil {
			s.modelID = v
		}
	}
	s.cacheLoaded = true
	return s.systemPrompt, s.modelID
}

var newSessionID = func() string {
	return uuid.NewString()
}
