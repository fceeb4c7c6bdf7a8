package main

import (
	"log/slog"
	"time"

	"github.com/yanqian/page-summarizer/internal/domain/gate"
	"github.com/yanqian/page-summarizer/internal/domain/ratelimit"
	"github.com/yanqian/page-summarizer/internal/domain/summarizer"
	"github.com/yanqian/page-summarizer/internal/infra/config"
	"github.com/yanqian/page-summarizer/internal/infra/llm/chatgpt"
	httpiface "github.com/yanqian/page-summarizer/internal/interface/http"
	"github.com/yanqian/page-summarizer/pkg/metrics"
	"github.com/yanqian/page-summarizer/pkg/util"
)

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}
}

func provideChatGPTClient(cfg *config.Config) *chatgpt.Client {
	// The context deadline governs each call; the transport timeout is a backstop.
	return chatgpt.NewClient(cfg.LLM.BaseURL, cfg.LLM.Timeout+5*time.Second)
}

func provideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(ratelimit.Config{
		Limit:  cfg.HTTP.RateLimit.Requests,
		Window: cfg.HTTP.RateLimit.Window,
	}, util.Now)
}

func provideGate(cfg *config.Config, limiter *ratelimit.Limiter, recorder *metrics.Recorder, logger *slog.Logger) *gate.Gate {
	return gate.New(gate.Config{MaxInputChars: cfg.Summary.MaxInputChars}, limiter, recorder, logger)
}

func provideClientIdentifier() httpiface.ClientIdentifier {
	return httpiface.RemoteClientID
}
