// Package gate rejects summarization requests that violate rate, shape or
// size policy before any provider cost is incurred.
package gate

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yanqian/page-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/page-summarizer/pkg/errors"
)

const (
	CodeRateLimited     = "rate_limited"
	CodeInvalidMode     = "invalid_mode"
	CodeInvalidKey      = "invalid_key"
	CodePayloadTooLarge = "payload_too_large"
)

const (
	rateLimitedMessage = "Too many requests. Please wait a minute"
	invalidModeMessage = "Invalid mode."
	invalidKeyMessage  = "Invalid API key."
	keyPrefix          = "sk-"
)

// RateLimiter counts one request per call.
type RateLimiter interface {
	Allow(clientID string) bool
}

// Observer receives every gate outcome.
type Observer interface {
	ObserveGate(outcome string)
}

// Config holds the gate policy.
type Config struct {
	MaxInputChars int
}

// Gate runs the ordered admission checks: rate, mode, key, size.
type Gate struct {
	cfg      Config
	limiter  RateLimiter
	observer Observer
	logger   *slog.Logger
}

// New wires a gate around the shared limiter.
func New(cfg Config, limiter RateLimiter, observer Observer, logger *slog.Logger) *Gate {
	return &Gate{
		cfg:      cfg,
		limiter:  limiter,
		observer: observer,
		logger:   logger.With("component", "gate"),
	}
}

// Admit checks req on behalf of clientID and returns the dispatchable prompt.
// Only the rate check has side effects.
func (g *Gate) Admit(clientID string, req summarizer.Request) (summarizer.Prompt, error) {
	prompt, err := g.admit(clientID, req)
	outcome := "admitted"
	if err != nil {
		outcome = apperrors.CodeOf(err)
		g.logger.Info("request rejected", "client", clientID, "reason", outcome)
	}
	if g.observer != nil {
		g.observer.ObserveGate(outcome)
	}
	return prompt, err
}

func (g *Gate) admit(clientID string, req summarizer.Request) (summarizer.Prompt, error) {
	if !g.limiter.Allow(clientID) {
		return summarizer.Prompt{}, apperrors.Wrap(CodeRateLimited, rateLimitedMessage, nil)
	}

	mode, err := ValidateMode(req.Mode)
	if err != nil {
		return summarizer.Prompt{}, err
	}

	var key string
	if req.APIKey != nil {
		key = *req.APIKey
	}
	if err := ValidateKey(key); err != nil {
		return summarizer.Prompt{}, err
	}

	text := summarizer.ExtractText(req.Content)
	if err := ValidateSize(text, g.cfg.MaxInputChars); err != nil {
		return summarizer.Prompt{}, err
	}

	return summarizer.Prompt{Mode: mode, Text: text, APIKey: key}, nil
}

// ValidateMode resolves an optional mode; nil means the default mode.
func ValidateMode(name *string) (summarizer.Mode, error) {
	value := summarizer.DefaultModeName
	if name != nil {
		value = *name
	}
	mode, ok := summarizer.ParseMode(value)
	if !ok {
		return 0, apperrors.Wrap(CodeInvalidMode, invalidModeMessage, nil)
	}
	return mode, nil
}

// ValidateKey is a shape check only; it never contacts the provider.
func ValidateKey(key string) error {
	if key == "" || !strings.HasPrefix(key, keyPrefix) {
		return apperrors.Wrap(CodeInvalidKey, invalidKeyMessage, nil)
	}
	return nil
}

// ValidateSize caps the extracted text at limit characters (code points).
func ValidateSize(text string, limit int) error {
	if utf8.RuneCountInString(text) > limit {
		return apperrors.Wrap(CodePayloadTooLarge, tooLargeMessage(limit), nil)
	}
	return nil
}

func tooLargeMessage(limit int) string {
	return fmt.Sprintf("Page too long. Please try a shorter page (max %d chars).", limit)
}
