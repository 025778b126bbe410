package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the single gateway to the core SautiAI API, which owns contacts,
// agents, the voice catalog, calls and dashboard aggregates.
//
// Rules:
// - No raw HTTP calls to the core API outside this package.
// - Every request is workspace-scoped; workspaceID comes from the verified
//   session, never from client input.
// - Response envelopes are normalized exactly once, here. Callers always see
//   typed values.
type Client struct {
	baseURL string
	http    *http.Client

	// serviceToken authenticates this service to the core API.
	serviceToken string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithServiceToken(tok string) Option {
	return func(c *Client) { c.serviceToken = tok }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream: base url is required")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

/* ===================== ERROR TAXONOMY ===================== */

var (
	// ErrUnreachable means the core API could not be contacted at all.
	// Surfaced to users as "Cannot connect to server".
	ErrUnreachable = errors.New("upstream: cannot connect to server")

	// ErrUnauthorized means the core API rejected our credentials; the
	// dashboard session must be terminated.
	ErrUnauthorized = errors.New("upstream: unauthorized")

	// ErrNotFound covers optional sub-resources that are not ready yet
	// (e.g., a transcript for a call that has not started talking).
	// Callers treat it as "data not ready", not as a failure.
	ErrNotFound = errors.New("upstream: not found")
)

// StatusError carries a non-2xx upstream response that is none of the
// sentinel cases above.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status %d: %s", e.Code, e.Body)
}

/* ===================== TRANSPORT ===================== */

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectivityErr(err) {
			return fmt.Errorf("%w: %v", ErrUnreachable, err)
		}
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream: decode response: %w", err)
	}
	return nil
}

func isConnectivityErr(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

/* ===================== ENVELOPE NORMALIZATION ===================== */

// listEnvelope absorbs the two list response shapes the core API emits:
// a bare JSON array or an object wrapping the array under "items".
// This is the only place that shape-guessing is allowed.
type listEnvelope[T any] struct {
	Items []T
}

func (l *listEnvelope[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.Items)
	}
	var wrapped struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	l.Items = wrapped.Items
	return nil
}

func workspaceQuery(workspaceID string) url.Values {
	q := url.Values{}
	q.Set("workspace_id", workspaceID)
	return q
}
