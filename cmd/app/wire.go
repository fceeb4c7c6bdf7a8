//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/page-summarizer/internal/bootstrap"
	"github.com/yanqian/page-summarizer/internal/domain/gate"
	"github.com/yanqian/page-summarizer/internal/domain/summarizer"
	"github.com/yanqian/page-summarizer/internal/infra/config"
	"github.com/yanqian/page-summarizer/internal/infra/llm/chatgpt"
	httpiface "github.com/yanqian/page-summarizer/internal/interface/http"
	"github.com/yanqian/page-summarizer/pkg/logger"
	"github.com/yanqian/page-summarizer/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewRecorder,
		provideSummaryConfig,
		provideChatGPTClient,
		provideRateLimiter,
		provideGate,
		provideClientIdentifier,
		summarizer.NewService,
		wire.Bind(new(summarizer.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(summarizer.Observer), new(*metrics.Recorder)),
		wire.Bind(new(httpiface.Admitter), new(*gate.Gate)),
		httpiface.NewSummaryHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
