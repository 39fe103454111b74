package backend

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

	"github.com/google/uuid"

	"github.com/supanews/supanews/internal/client/config"
	"github.com/supanews/supanews/internal/client/session"
	"github.com/supanews/supanews/internal/common"
	"github.com/supanews/supanews/internal/logging"
)

// Client is the single long-lived handle to the managed backend. It carries
// the endpoint URL and API key, attaches auth headers to every request, and
// translates backend error bodies into common.BackendError values.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	sessions *session.Store
	log      logging.Logger
}

// Request describes one call against the backend's REST or auth surface.
type Request struct {
	Method string
	Path   string // e.g. "/rest/v1/posts"
	Query  url.Values
	Header http.Header // extra headers (Prefer, Accept, ...)
	Body   any         // JSON-encoded when non-nil
}

// New builds a Client from configuration. The base URL must be absolute.
func New(cfg *config.Config, sessions *session.Store, log logging.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("invalid backend URL %q", cfg.BackendURL)
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BackendURL, "/"),
		apiKey:   cfg.BackendKey,
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		sessions: sessions,
		log:      log,
	}, nil
}

// BaseURL returns the backend endpoint without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Do executes the request and decodes a JSON response into out (when out is
// non-nil and a body was returned).
//
// When the backend answers 401 and a refresh token is held, the session is
// refreshed once and the request retried exactly once. The refresh updates
// the session store, which notifies auth-state subscribers.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	err := c.doOnce(ctx, req, out)
	if err == nil {
		return nil
	}

	var berr *common.BackendError
	if !errors.As(err, &berr) || berr.Status != http.StatusUnauthorized {
		return err
	}
	if c.sessions.RefreshToken() == "" || isTokenRequest(req) {
		return err
	}

	if rerr := c.RefreshSession(ctx); rerr != nil {
		c.log.Warn(ctx, "session refresh failed", "error", rerr)
		return err
	}
	return c.doOnce(ctx, req, out)
}

// RefreshSession exchanges the held refresh token for a new session and
// stores it.
func (c *Client) RefreshSession(ctx context.Context) error {
	token := c.sessions.RefreshToken()
	if token == "" {
		return common.ErrNotAuthenticated
	}

	var sess session.Session
	req := Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/token",
		Query:  url.Values{"grant_type": {"refresh_token"}},
		Body:   map[string]string{"refresh_token": token},
	}
	if err := c.doOnce(ctx, req, &sess); err != nil {
		return err
	}

	c.sessions.Set(&sess)
	return nil
}

func (c *Client) doOnce(ctx context.Context, req Request, out any) error {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return &common.BackendError{Message: "encode request: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return &common.BackendError{Message: err.Error(), Err: err}
	}

	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.bearerToken())
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = vs
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn(ctx, "backend unreachable", "method", req.Method, "path", req.Path, "error", err)
		return &common.BackendError{
			Message: "backend unreachable: " + err.Error(),
			Err:     fmt.Errorf("%v: %w", err, common.ErrUnavailable),
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &common.BackendError{Status: resp.StatusCode, Message: "read response: " + err.Error(), Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		berr := decodeError(resp.StatusCode, data)
		c.log.Debug(ctx, "backend rejected request",
			"method", req.Method, "path", req.Path,
			"status", berr.Status, "code", berr.Code)
		return berr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &common.BackendError{Status: resp.StatusCode, Message: "decode response: " + err.Error(), Err: err}
		}
	}
	return nil
}

// bearerToken is the user's access token when a session is held, the API key
// otherwise (anonymous access).
func (c *Client) bearerToken() string {
	if t := c.sessions.AccessToken(); t != "" {
		return t
	}
	return c.apiKey
}

func isTokenRequest(req Request) bool {
	return strings.HasPrefix(req.Path, "/auth/v1/token")
}
