package client

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

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	store   TokenStore
	http    *http.Client
	log     logging.Logger

	mu             sync.Mutex
	token          string
	onUnauthorized func()
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTransport replaces the underlying round tripper. The auth step is
// always layered on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.http.Transport.(*authTransport).base = rt
	}
}

// NewHTTPClient builds a gateway for baseURL. store may be nil, in which
// case only the token set with SetToken is attached.
func NewHTTPClient(baseURL string, store TokenStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		log:     logging.NewNopLogger(),
	}
	c.http = &http.Client{Transport: &authTransport{base: http.DefaultTransport, client: c}}

	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "api")
	return c, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *HTTPClient) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// bearer prefers the persisted token over the in-memory default.
func (c *HTTPClient) bearer(ctx context.Context) string {
	if c.store != nil {
		if token, ok := c.store.Token(ctx); ok {
			return token
		}
	}
	return c.Token()
}

func (c *HTTPClient) unauthorized(ctx context.Context, req *http.Request) {
	c.log.Info(ctx, "server rejected credentials", "method", req.Method, "path", req.URL.Path)

	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.log.Warn(ctx, "clear session after 401", "error", err)
		}
	}

	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (c *HTTPClient) RequestOTP(ctx context.Context, req models.OTPRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/request-otp", req, &resp); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error) {
	var resp models.VerifyResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", req, &resp); err != nil {
		return models.VerifyResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, in models.NoteInput) (models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPost, "/notes", in, &note); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	re := &RequestError{Status: resp.StatusCode}

	var msg models.MessageResponse
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(b, &msg) == nil {
		re.Message = msg.Message
	}
	return re
}
