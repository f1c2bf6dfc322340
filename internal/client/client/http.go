package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/uni-jay/ican-portal/internal/client/models"
	"github.com/uni-jay/ican-portal/internal/common"
	"github.com/uni-jay/ican-portal/internal/logging"
)

const (
	// DefaultTimeout bounds every request when no other timeout is configured.
	DefaultTimeout = 15 * time.Second

	maxBodySize = 4 << 20
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore
	timeout time.Duration
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient builds a client for the backend rooted at baseURL, e.g.
// "https://portal.example.org/api".
func NewHTTPClient(baseURL string, tokens *TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		timeout: DefaultTimeout,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) setToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

func (c *HTTPClient) HasToken() bool {
	return c.currentToken() != ""
}

// envelope is the wire shape of every backend response.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type validator interface {
	Validate() error
}

// request performs one round trip and normalizes its outcome.
func request[T any](ctx context.Context, c *HTTPClient, method, path string, body any) models.Result[T] {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return models.Fail[T](0, fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(b)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return models.Fail[T](0, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := c.currentToken(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return models.Fail[T](0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.Warn(ctx, "reading response failed", "method", method, "path", path, "error", err)
		return models.Fail[T](resp.StatusCode, err.Error())
	}

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)
	return decodeResult[T](resp.StatusCode, raw)
}

func malformed[T any](status int, reason any) models.Result[T] {
	return models.Fail[T](status, fmt.Sprintf("%s: %v", ErrMalformedResponse, reason))
}

func decodeResult[T any](status int, raw []byte) models.Result[T] {
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if status < 200 || status > 299 {
		msg := ""
		if decodeErr == nil {
			msg = env.Message
			if msg == "" {
				msg = env.Error
			}
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP error: %d", status)
		}
		return models.Fail[T](status, msg)
	}

	if decodeErr != nil {
		return malformed[T](status, decodeErr)
	}
	if env.Success == nil {
		return malformed[T](status, "missing success field")
	}

	res := models.Result[T]{
		Success:    *env.Success,
		Message:    env.Message,
		Error:      env.Error,
		StatusCode: status,
	}
	if !res.Success {
		if res.Error == "" {
			res.Error = res.Message
		}
		if res.Error == "" {
			res.Error = common.ErrRequestFailed.Error()
		}
		return res
	}

	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, &res.Data); err != nil {
			return malformed[T](status, err)
		}
	}
	if v, ok := any(&res.Data).(validator); ok {
		if err := v.Validate(); err != nil {
			return malformed[T](status, err)
		}
	}
	return res
}
