// Package main is the entry point for the translation lookup Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pricofy/translation-lookup/internal/config"
	"github.com/pricofy/translation-lookup/internal/domain"
	"github.com/pricofy/translation-lookup/internal/handler"
	"github.com/pricofy/translation-lookup/internal/logger"
	"github.com/pricofy/translation-lookup/internal/router"
	"github.com/pricofy/translation-lookup/internal/sanitize"
	"github.com/pricofy/translation-lookup/internal/translator"
)

// batchHandler is satisfied by *handler.Handler.
type batchHandler interface {
	Handle(ctx context.Context, req domain.Request) (*domain.Response, error)
}

type app struct {
	handler batchHandler
	prober  Prober
	invoker Invoker // nil until the first warmup that needs it
	target  string
	log     *slog.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	client := translator.NewClient(cfg.Translate, sanitize.StripMarkup, log)

	a := &app{
		handler: handler.New(client, router.New(), cfg.Translate.TargetLang, cfg.Batch, log),
		prober:  client,
		target:  cfg.Translate.TargetLang,
		log:     log.With("environment", cfg.Environment),
	}

	lambda.Start(a.handleRequest)
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return a.handleWarmup(ctx, warmup)
	}

	var req domain.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	return a.handler.Handle(ctx, req)
}
