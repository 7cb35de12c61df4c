// Package translator looks up Chinese phrases on Google Translate's
// translate_a endpoint and turns the answer into translation entries.
package translator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/pricofy/translation-lookup/internal/config"
	"github.com/pricofy/translation-lookup/internal/domain"
	"github.com/pricofy/translation-lookup/internal/normalizer"
	"github.com/pricofy/translation-lookup/internal/parser"
	"github.com/pricofy/translation-lookup/internal/sanitize"
)

const (
	sourceLang        = "zh-CN"
	defaultTargetLang = "en"

	// probePhrase is known to translate; it is only used by CheckConnectivity.
	probePhrase = "好"

	defaultMaxBodyBytes = 1 << 20
)

// Sanitizer cleans a query before it is sent to the service.
type Sanitizer func(string) string

// Options control a single Translate call. The zero value translates to
// English and reports failures as placeholder entries.
type Options struct {
	TargetLang string
	// Quiet suppresses placeholder entries: failures yield a nil result.
	Quiet bool
}

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	baseURL    string
	userAgent  string
	maxBody    int64
	httpClient *http.Client
	sanitize   Sanitizer
	log        *slog.Logger
}

// NewClient creates a Client. A nil sanitizer defaults to sanitize.StripMarkup.
func NewClient(cfg config.TranslateConfig, sanitizer Sanitizer, logger *slog.Logger) *Client {
	if sanitizer == nil {
		sanitizer = sanitize.StripMarkup
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		maxBody:    maxBody,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sanitize:   sanitizer,
		log:        logger.With("adapter", "google_translate"),
	}
}

// Translate looks up query and returns the translation entries.
//
// It returns nil, nil when there is nothing to suggest: the query is blank
// once markup is stripped, or the service echoed it back untranslated.
// Transport, parse and shape failures never surface as errors; they become
// a single muted placeholder entry, or nil when opts.Quiet is set. Any
// other error is returned as is.
func (c *Client) Translate(ctx context.Context, query string, opts Options) (*domain.Result, error) {
	text := c.sanitize(query)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	target := opts.TargetLang
	if target == "" {
		target = defaultTargetLang
	}

	log := c.log.With(slog.String("lookup_id", uuid.NewString()))
	log.InfoContext(ctx, "translate", slog.String("query", text), slog.String("target", target))

	res, err := c.lookup(ctx, log, text, target)
	if err == nil {
		return res, nil
	}

	entry, ok := placeholderFor(err)
	if !ok {
		return nil, err
	}
	logFailure(ctx, log, err)

	if opts.Quiet {
		return nil, nil
	}
	return &domain.Result{Entries: []domain.Entry{entry}}, nil
}

// CheckConnectivity sends the probe phrase and reports whether a usable
// response came back. Whether the probe was actually translated does not
// matter.
func (c *Client) CheckConnectivity(ctx context.Context, targetLang string) bool {
	if targetLang == "" {
		targetLang = defaultTargetLang
	}
	log := c.log.With(slog.String("lookup_id", uuid.NewString()))

	if _, err := c.lookup(ctx, log, probePhrase, targetLang); err != nil {
		log.WarnContext(ctx, "connectivity check failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

// lookup issues one request and interprets the body. text must already be
// sanitized; it is also what an echoed response is compared against.
func (c *Client) lookup(ctx context.Context, log *slog.Logger, text, target string) (*domain.Result, error) {
	reqURL := c.requestURL(text, target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("translator: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.baseURL)

	log.DebugContext(ctx, "issuing query", slog.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: reqURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		return nil, &ResponseError{
			Body: string(body[:c.maxBody]),
			Err:  fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, c.maxBody),
		}
	}
	literal := string(body)

	log.DebugContext(ctx, "parsing response", slog.String("response", literal))

	v, err := parser.Parse(literal)
	if err != nil {
		return nil, &ResponseError{Body: literal, Err: err}
	}
	res, err := normalizer.Normalize(v, text)
	if err != nil {
		return nil, &ResponseError{Body: literal, Err: err}
	}
	return res, nil
}

func (c *Client) requestURL(text, target string) string {
	return c.baseURL + "/translate_a/t?client=j" +
		"&text=" + percentEncode(text) +
		"&sl=" + sourceLang +
		"&tl=" + percentEncode(target)
}

// percentEncode escapes s for a query string, spelling spaces as %20.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func logFailure(ctx context.Context, log *slog.Logger, err error) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		log.ErrorContext(ctx, "interpret translation response failed",
			slog.String("error", respErr.Err.Error()),
			slog.String("response", respErr.Body),
		)
		return
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		log.ErrorContext(ctx, "translation request failed",
			slog.String("url", transportErr.URL),
			slog.Int("status", transportErr.Status),
			slog.String("error", err.Error()),
		)
	}
}
