// Package handler provides the Lambda handler for batch lookups.
package handler

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pricofy/translation-lookup/internal/chunker"
	"github.com/pricofy/translation-lookup/internal/config"
	"github.com/pricofy/translation-lookup/internal/domain"
	"github.com/pricofy/translation-lookup/internal/router"
	"github.com/pricofy/translation-lookup/internal/translator"
)

// Translator looks up a single phrase.
type Translator interface {
	Translate(ctx context.Context, query string, opts translator.Options) (*domain.Result, error)
}

// Handler translates a batch of phrases.
type Handler struct {
	translator    Translator
	router        *router.Router
	defaultTarget string
	maxTokens     int
	concurrency   int
	log           *slog.Logger
}

// New creates a Handler. defaultTarget is used when a request names no
// target language.
func New(tr Translator, r *router.Router, defaultTarget string, cfg config.BatchConfig, logger *slog.Logger) *Handler {
	return &Handler{
		translator:    tr,
		router:        r,
		defaultTarget: defaultTarget,
		maxTokens:     cfg.MaxTokens,
		concurrency:   cfg.Concurrency,
		log:           logger.With("component", "handler"),
	}
}

// Handle processes a lookup request.
// Texts are chunked by estimated size; chunks run one after another and the
// phrases inside a chunk are looked up concurrently. Results keep the input
// order. Request problems are reported in Response.Error, not as an error.
func (h *Handler) Handle(ctx context.Context, req domain.Request) (*domain.Response, error) {
	if err := validateRequest(req); err != nil {
		return &domain.Response{Error: err.Error()}, nil
	}

	target := req.TargetLang
	if target == "" {
		target = h.defaultTarget
	}
	route, err := h.router.Resolve(target)
	if err != nil {
		return &domain.Response{Error: fmt.Sprintf("no translation into %s: %v", target, err)}, nil
	}

	if len(req.Texts) == 0 {
		return &domain.Response{Results: []domain.Lookup{}, ChunksProcessed: 0}, nil
	}

	chunks := chunker.ChunkByTokens(req.Texts, h.maxTokens)

	results := make([]domain.Lookup, 0, len(req.Texts))
	for i, chunk := range chunks {
		chunkResults, err := h.translateChunk(ctx, chunk, route, req.Quiet)
		if err != nil {
			h.log.ErrorContext(ctx, "chunk failed", slog.Int("chunk", i), slog.String("error", err.Error()))
			return &domain.Response{Error: fmt.Sprintf("translation failed: %v", err)}, nil
		}
		results = append(results, chunkResults...)
	}

	h.log.InfoContext(ctx, "batch translated",
		slog.Int("texts", len(req.Texts)),
		slog.Int("chunks", len(chunks)),
		slog.String("target", route.Target),
	)

	return &domain.Response{
		Results:         results,
		ChunksProcessed: len(chunks),
	}, nil
}

// translateChunk looks up every phrase of a chunk, at most h.concurrency at
// a time.
func (h *Handler) translateChunk(ctx context.Context, texts []string, route router.Route, quiet bool) ([]domain.Lookup, error) {
	out := make([]domain.Lookup, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	if h.concurrency > 0 {
		g.SetLimit(h.concurrency)
	}

	opts := translator.Options{TargetLang: route.Target, Quiet: quiet}
	for i, text := range texts {
		g.Go(func() error {
			res, err := h.translator.Translate(gctx, text, opts)
			if err != nil {
				return fmt.Errorf("text %q: %w", text, err)
			}
			out[i] = domain.Lookup{Text: text}
			if res != nil {
				out[i].Entries = res.Entries
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// validateRequest checks the request is valid.
func validateRequest(req domain.Request) error {
	if req.Texts == nil {
		return fmt.Errorf("texts is required")
	}
	return nil
}
