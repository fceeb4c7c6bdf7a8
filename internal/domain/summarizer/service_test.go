package summarizer_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/page-summarizer/internal/domain/summarizer"
	"github.com/yanqian/page-summarizer/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/page-summarizer/pkg/errors"
	"github.com/yanqian/page-summarizer/pkg/metrics"
)

const secretKey = "sk-live-very-secret"

func TestSummarizeSendsModeInstructionAndSettings(t *testing.T) {
	client := &stubChatClient{
		completionResp: completion("A short summary.", metrics.TokenUsage{PromptTokens: 20, CompletionTokens: 5, TotalTokens: 25}),
	}
	observer := &recordingObserver{}
	svc := summarizer.NewService(testConfig(), client, observer, newTestLogger(nil))

	resp, err := svc.Summarize(context.Background(), summarizer.Prompt{
		Mode:   summarizer.ModeExpert,
		Text:   "Go makes backend services easier.",
		APIKey: secretKey,
	})
	require.NoError(t, err)
	require.Equal(t, "A short summary.", resp.Summary)

	req := client.lastRequest
	require.Equal(t, secretKey, req.APIKey)
	require.Equal(t, "test-model", req.Model)
	require.Equal(t, 250, req.MaxTokens)
	require.InDelta(t, 0.3, req.Temperature, 1e-6)
	require.Len(t, req.Messages, 2)
	require.Equal(t, summarizer.SystemInstruction(summarizer.ModeExpert), req.Messages[0].Content)
	require.Equal(t, "Go makes backend services easier.", req.Messages[1].Content)

	require.Equal(t, []string{"ok"}, observer.results)
	require.Equal(t, 1, client.calls)
}

func TestSummarizeAppliesTimeout(t *testing.T) {
	client := &stubChatClient{
		completionFn: func(ctx context.Context) (chatgpt.ChatCompletionResponse, error) {
			<-ctx.Done()
			return chatgpt.ChatCompletionResponse{}, ctx.Err()
		},
	}
	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	observer := &recordingObserver{}
	svc := summarizer.NewService(cfg, client, observer, newTestLogger(nil))

	_, err := svc.Summarize(context.Background(), summarizer.Prompt{Mode: summarizer.ModeSimple, Text: "x", APIKey: secretKey})
	require.True(t, apperrors.IsCode(err, summarizer.CodeProviderError))
	require.Equal(t, []string{chatgpt.FailureTimeout}, observer.results)
}

func TestSummarizeProviderFailuresCollapseToGenericError(t *testing.T) {
	leaky := &openai.APIError{
		HTTPStatusCode: 401,
		Message:        "Incorrect API key provided: " + secretKey,
		Type:           "invalid_request_error",
	}
	tests := []struct {
		name         string
		resp         chatgpt.ChatCompletionResponse
		err          error
		wantCategory string
	}{
		{name: "invalid key", err: leaky, wantCategory: chatgpt.FailureAuth},
		{name: "billing", err: &openai.APIError{HTTPStatusCode: 429, Message: "quota for " + secretKey}, wantCategory: chatgpt.FailureQuota},
		{name: "opaque transport error", err: errors.New("dial tcp: refused while sending " + secretKey), wantCategory: chatgpt.FailureUnknown},
		{name: "no choices", resp: chatgpt.ChatCompletionResponse{}, wantCategory: chatgpt.FailureMalformedResponse},
		{name: "blank content", resp: completion("   ", metrics.TokenUsage{}), wantCategory: chatgpt.FailureMalformedResponse},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var logs bytes.Buffer
			client := &stubChatClient{completionResp: tt.resp, completionErr: tt.err}
			observer := &recordingObserver{}
			svc := summarizer.NewService(testConfig(), client, observer, newTestLogger(&logs))

			_, err := svc.Summarize(context.Background(), summarizer.Prompt{Mode: summarizer.ModeSimple, Text: "page", APIKey: secretKey})
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, summarizer.CodeProviderError))
			require.Equal(t, summarizer.ProviderErrorMessage, apperrors.MessageOf(err))
			require.NotContains(t, err.Error(), secretKey)
			if tt.err != nil {
				require.NotErrorIs(t, err, tt.err)
			}
			require.NotContains(t, logs.String(), secretKey)
			require.Contains(t, logs.String(), tt.wantCategory)
			require.Equal(t, []string{tt.wantCategory}, observer.results)
			require.Equal(t, 1, client.calls, "no retries toward the provider")
		})
	}
}

func testConfig() summarizer.Config {
	return summarizer.Config{
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   250,
		Timeout:     time.Second,
	}
}

func completion(content string, usage metrics.TokenUsage) chatgpt.ChatCompletionResponse {
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: content}}},
		Usage:   usage,
	}
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	if buf == nil {
		buf = &bytes.Buffer{}
	}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type stubChatClient struct {
	completionResp chatgpt.ChatCompletionResponse
	completionErr  error
	completionFn   func(ctx context.Context) (chatgpt.ChatCompletionResponse, error)

	lastRequest chatgpt.ChatCompletionRequest
	calls       int
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.lastRequest = req
	s.calls++
	if s.completionFn != nil {
		return s.completionFn(ctx)
	}
	if s.completionErr != nil {
		return chatgpt.ChatCompletionResponse{}, s.completionErr
	}
	return s.completionResp, nil
}

type recordingObserver struct {
	mu      sync.Mutex
	results []string
}

func (o *recordingObserver) ObserveProvider(result string, _ time.Duration, _ metrics.TokenUsage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}
