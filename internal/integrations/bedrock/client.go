package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"workshop-sidekick/internal/domain"
)

const (
	anthropicVersion = "bedrock-2023-05-31"

	// DefaultModelID is the model used when no override is configured.
	DefaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

	pingMaxTokens = 10
)

// bedrockAPI is the minimal Bedrock Runtime interface required by Client.
// *bedrockruntime.Client satisfies it.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// invokeRequest is the anthropic messages body accepted by InvokeModel.
type invokeRequest struct {
	AnthropicVersion string               `json:"anthropic_version"`
	MaxTokens        int                  `json:"max_tokens"`
	Messages         []domain.ChatMessage `json:"messages"`
}

// invokeResponse is the minimal response shape returned by InvokeModel.
type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Client is a focused Bedrock Runtime client for single-shot completions.
type Client struct {
	api          bedrockAPI
	defaultModel string
}

// New creates a Client. defaultModel may be empty, selecting DefaultModelID.
func New(api bedrockAPI, defaultModel string) (*Client, error) {
	if api == nil {
		return nil, errors.New("bedrock: api must not be nil")
	}
	defaultModel = strings.TrimSpace(defaultModel)
	if defaultModel == "" {
		defaultModel = DefaultModelID
	}
	return &Client{api: api, defaultModel: defaultModel}, nil
}

// Complete sends one prompt and returns the model's text. An empty model
// selects the client default.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("bedrock: prompt must not be empty")
	}
	if model == "" {
		model = c.defaultModel
	}
	if maxTokens <= 0 {
		return "", fmt.Errorf("bedrock: max tokens must be positive, got %d", maxTokens)
	}

	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Messages: []domain.ChatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: marshal request: %w", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: invoke model: %w", err)
	}

	var payload invokeResponse
	if err := json.Unmarshal(out.Body, &payload); err != nil {
		return "", fmt.Errorf("bedrock: decode response: %w", err)
	}
	if len(payload.Content) == 0 {
		return "", errors.New("bedrock: empty content in response")
	}
	return payload.Content[0].Text, nil
}

// Ping issues a tiny completion to verify connectivity to the inference
// backend. Used by the debug health check.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Complete(ctx, "", "Hello", pingMaxTokens); err != nil {
		return fmt.Errorf("bedrock: ping: %w", err)
	}
	return nil
}
