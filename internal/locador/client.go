package locador

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// SummaryFetcher defines the read path the dashboard poller depends on.
// This interface is implemented by *Client and can be used for testing.
type SummaryFetcher interface {
	FetchSummary(ctx context.Context) (*Summary, error)
}

// Ensure Client implements SummaryFetcher at compile time.
var _ SummaryFetcher = (*Client)(nil)

// ErrUnauthorized reports a missing, expired or rejected session token.
var ErrUnauthorized = errors.New("not authenticated")

// ErrNotFound reports a 404 from the API.
var ErrNotFound = errors.New("not found")

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "locador-console/0.1"
	defaultTimeout   = 10 * time.Second
	maxErrorBody     = 64 << 10
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the API root, for example http://127.0.0.1:8000 or 10.0.0.2:8000.
	BaseURL string
	// Token is an optional pre-issued bearer token.
	Token string
	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout time.Duration
	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// Client talks to the Locador Financial REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client // attaches the bearer token
	plain     *http.Client // login only
	userAgent string
	logger    zerolog.Logger

	mu    sync.RWMutex
	token *oauth2.Token
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	c := &Client{
		baseURL:   base,
		plain:     &http.Client{Timeout: timeout, Transport: transport},
		userAgent: defaultUserAgent,
		logger:    log.With().Str("component", "api").Logger(),
	}
	c.http = &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: sessionSource{c},
			Base:   transport,
		},
	}
	if token := strings.TrimSpace(cfg.Token); token != "" {
		c.SetToken(NewToken(token, "bearer"))
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetToken installs the session token attached to every request.
func (c *Client) SetToken(tok *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = tok
}

// Token returns the current session token, or nil before login.
func (c *Client) Token() *oauth2.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return nil
	}
	dup := *c.token
	return &dup
}

// sessionSource adapts the client's current token to oauth2.TokenSource.
type sessionSource struct{ c *Client }

func (s sessionSource) Token() (*oauth2.Token, error) {
	tok := s.c.Token()
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrUnauthorized
	}
	return tok, nil
}

// FetchSummary retrieves the dashboard totals.
func (c *Client) FetchSummary(ctx context.Context) (*Summary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Summary
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/dashboard/resumo"}, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// APIError is returned for any response with status >= 400.
type APIError struct {
	Status int
	Method string
	Path   string
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

// ErrorDetail returns the server-reported detail message.
func (e *APIError) ErrorDetail() string {
	return e.Detail
}

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	return c.send(ctx, c.http, method, rel, body, dest)
}

func (c *Client) send(ctx context.Context, hc *http.Client, method string, rel *url.URL, body, dest any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(rel).String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.roundTrip(hc, req, rel.Path, dest)
}

func (c *Client) roundTrip(hc *http.Client, req *http.Request, path string, dest any) error {
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", req.Method).Str("path", path).Msg("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 400 {
		return &APIError{
			Status: resp.StatusCode,
			Method: req.Method,
			Path:   path,
			Detail: readDetail(resp.Body),
		}
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readDetail extracts the `detail` field of an error payload. FastAPI
// validation errors carry a list of {loc, msg}; those messages are joined.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			msg := strings.TrimSpace(item.Msg)
			if msg == "" {
				continue
			}
			if n := len(item.Loc); n > 0 {
				msg = fmt.Sprintf("%v: %s", item.Loc[n-1], msg)
			}
			msgs = append(msgs, msg)
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// resolve appends rel to the base path so a prefix such as /api survives.
func (c *Client) resolve(rel *url.URL) *url.URL {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(rel.Path, "/")
	u.RawQuery = rel.RawQuery
	return &u
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
