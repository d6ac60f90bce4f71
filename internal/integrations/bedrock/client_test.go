package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/require"
)

type fakeBedrock struct {
	out   *bedrockruntime.InvokeModelOutput
	err   error
	calls int
	last  *bedrockruntime.InvokeModelInput
}

func (f *fakeBedrock) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.calls++
	f.last = in
	return f.out, f.err
}

func textResponse(text string) *bedrockruntime.InvokeModelOutput {
	body, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return &bedrockruntime.InvokeModelOutput{Body: body}
}

func TestComplete_RequestBody(t *testing.T) {
	api := &fakeBedrock{out: textResponse("answer")}
	c, err := New(api, "")
	require.NoError(t, err)

	got, err := c.Complete(context.Background(), "anthropic.claude-3-haiku-20240307-v1:0", "What is S3?", 500)
	require.NoError(t, err)
	require.Equal(t, "answer", got)

	require.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", *api.last.ModelId)
	require.Equal(t, "application/json", *api.last.ContentType)

	var body map[string]any
	require.NoError(t, json.Unmarshal(api.last.Body, &body))
	require.Equal(t, "bedrock-2023-05-31", body["anthropic_version"])
	require.Equal(t, float64(500), body["max_tokens"])

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	require.Equal(t, "user", msg["role"])
	require.Equal(t, "What is S3?", msg["content"])
}

func TestComplete_EmptyModelUsesDefault(t *testing.T) {
	api := &fakeBedrock{out: textResponse("hi")}
	c, err := New(api, "")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "", "hello", 100)
	require.NoError(t, err)
	require.Equal(t, DefaultModelID, *api.last.ModelId)
}

func TestComplete_ConfiguredDefaultModel(t *testing.T) {
	api := &fakeBedrock{out: textResponse("hi")}
	c, err := New(api, "anthropic.claude-3-haiku-20240307-v1:0")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "", "hello", 100)
	require.NoError(t, err)
	require.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", *api.last.ModelId)
}

func TestComplete_InputValidation(t *testing.T) {
	c, err := New(&fakeBedrock{}, "")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "", "  ", 100)
	require.Error(t, err)

	_, err = c.Complete(context.Background(), "", "hello", 0)
	require.Error(t, err)
}

func TestComplete_InvokeError(t *testing.T) {
	api := &fakeBedrock{err: errors.New("throttled")}
	c, err := New(api, "")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "", "hello", 100)
	require.ErrorContains(t, err, "bedrock: invoke model")
	require.ErrorContains(t, err, "throttled")
}

func TestComplete_EmptyContent(t *testing.T) {
	api := &fakeBedrock{out: &bedrockruntime.InvokeModelOutput{Body: []byte(`{"content":[]}`)}}
	c, err := New(api, "")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "", "hello", 100)
	require.ErrorContains(t, err, "empty content")
}

func TestComplete_MalformedBody(t *testing.T) {
	api := &fakeBedrock{out: &bedrockruntime.InvokeModelOutput{Body: []byte(`not json`)}}
	c, err := New(api, "")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "", "hello", 100)
	require.ErrorContains(t, err, "decode response")
}

func TestPing(t *testing.T) {
	api := &fakeBedrock{out: textResponse("pong")}
	c, err := New(api, "")
	require.NoError(t, err)

	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, 1, api.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(api.last.Body, &body))
	require.Equal(t, float64(pingMaxTokens), body["max_tokens"])
}

func TestPing_Error(t *testing.T) {
	api := &fakeBedrock{err: errors.New("no access")}
	c, err := New(api, "")
	require.NoError(t, err)

	require.ErrorContains(t, c.Ping(context.Background()), "bedrock: ping")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil, "")
	require.Error(t, err)
}
