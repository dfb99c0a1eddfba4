// Package backend talks to the advice/search service over JSON-over-HTTP.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	askPath    = "/ask"
	searchPath = "/search"

	// RequestIDHeader carries the per-call id used to correlate client and server logs.
	RequestIDHeader = "X-Request-ID"

	genericFailure = "Request failed"
)

// ErrNoBaseURL is returned when the backend URL is not configured.
var ErrNoBaseURL = errors.New("backend URL is not configured")

// Config describes how to build a backend client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client issues the two backend actions.
type Client interface {
	Ask(ctx context.Context, input string) (AskResponse, error)
	Search(ctx context.Context, input string) (SearchResponse, error)
	BaseURL() string
}

// AskResponse is the success body of POST /ask.
type AskResponse struct {
	Result  string   `json:"result"`
	Sources []string `json:"sources,omitempty"`
}

// RawHit is one entry of the /search results array. PageContent is a pointer
// so entries without it can be told apart from empty content.
type RawHit struct {
	PageContent *string `json:"pageContent"`
	Source      string  `json:"source"`
}

// UnmarshalJSON never fails on a malformed entry. Fields of the wrong type
// decode as absent, and an entry that is not an object decodes as a zero hit,
// so the rest of the response survives.
func (h *RawHit) UnmarshalJSON(data []byte) error {
	*h = RawHit{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	if raw := fields["pageContent"]; isJSONString(raw) {
		var content string
		if err := json.Unmarshal(raw, &content); err == nil {
			h.PageContent = &content
		}
	}
	if isJSONString(fields["source"]) {
		_ = json.Unmarshal(fields["source"], &h.Source)
	}
	return nil
}

func isJSONString(raw json.RawMessage) bool {
	return len(raw) > 0 && raw[0] == '"'
}

// SearchResponse is the success body of POST /search.
type SearchResponse struct {
	Results []RawHit `json:"results"`
}

type request struct {
	Input string `json:"input"`
}

type errorBody struct {
	Error string `json:"error"`
}

// StatusError is a non-2xx reply from the backend. Message is the backend's
// own error text, or "Request failed" when it sent none.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// IsDomain reports whether err is a structured backend failure rather than a
// transport or decoding problem.
func IsDomain(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// Detail returns the text shown to users after the workflow's prefix.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return err.Error()
}

// New validates cfg and returns an HTTP client.
func New(cfg Config) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrNoBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &httpClient{
		base:   base,
		client: pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger: logger.Named("backend"),
	}, nil
}

// pickHTTPClient returns custom when set. Otherwise the client has no
// timeout unless one is configured; callers cancel through the context.
func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: timeout}
}

func statusFailure(code int, body []byte) *StatusError {
	msg := genericFailure
	var parsed errorBody
	if err := decodeJSON(body, &parsed); err == nil && strings.TrimSpace(parsed.Error) != "" {
		msg = parsed.Error
	}
	return &StatusError{StatusCode: code, Message: msg}
}

func decodeJSON(body []byte, v any) error {
	if len(body) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(body, v)
}
