package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/page-summarizer/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/page-summarizer/pkg/errors"
	"github.com/yanqian/page-summarizer/pkg/metrics"
)

// CodeProviderError marks every upstream failure.
const CodeProviderError = "provider_error"

// ProviderErrorMessage is the only text a caller sees for upstream failures.
const ProviderErrorMessage = "Summarization failed. Check API key/billing and try again."

// errProviderFailed stands in for the upstream error, whose text may carry
// fragments of the caller's key.
var errProviderFailed = errors.New("provider call failed")

// Service dispatches one summarization call per admitted request.
type Service interface {
	Summarize(ctx context.Context, prompt Prompt) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Observer receives the outcome of every provider call.
type Observer interface {
	ObserveProvider(result string, elapsed time.Duration, usage metrics.TokenUsage)
}

type service struct {
	cfg      Config
	client   ChatClient
	observer Observer
	logger   *slog.Logger
}

// NewService is a wire provider for the summarizer domain.
func NewService(cfg Config, client ChatClient, observer Observer, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		client:   client,
		observer: observer,
		logger:   logger.With("component", "summarizer.service"),
	}
}

func (s *service) Summarize(ctx context.Context, prompt Prompt) (Response, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		APIKey:      prompt.APIKey,
		Model:       s.cfg.Model,
		Messages:    buildMessages(prompt),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	elapsed := time.Since(start)
	if err != nil {
		category, status := chatgpt.Classify(err)
		return Response{}, s.fail(category, status, elapsed, prompt.Mode)
	}

	summary := firstContent(resp)
	if summary == "" {
		return Response{}, s.fail(chatgpt.FailureMalformedResponse, 0, elapsed, prompt.Mode)
	}

	s.observe("ok", elapsed, resp.Usage)
	s.logger.Debug("summary generated",
		"mode", prompt.Mode.String(),
		"input_chars", len([]rune(prompt.Text)),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"latency_ms", elapsed.Milliseconds(),
	)
	return Response{Summary: summary}, nil
}

func (s *service) fail(category string, status int, elapsed time.Duration, mode Mode) error {
	s.observe(category, elapsed, metrics.TokenUsage{})
	s.logger.Warn("provider call failed",
		"category", category,
		"upstream_status", status,
		"mode", mode.String(),
		"latency_ms", elapsed.Milliseconds(),
	)
	return apperrors.Wrap(CodeProviderError, ProviderErrorMessage, errProviderFailed)
}

func (s *service) observe(result string, elapsed time.Duration, usage metrics.TokenUsage) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveProvider(result, elapsed, usage)
}

func buildMessages(prompt Prompt) []chatgpt.Message {
	return []chatgpt.Message{
		{Role: chatgpt.RoleSystem, Content: SystemInstruction(prompt.Mode)},
		{Role: chatgpt.RoleUser, Content: prompt.Text},
	}
}

func firstContent(resp chatgpt.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
