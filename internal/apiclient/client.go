package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/storage"
)

// APIError is a non-2xx response other than 401, carrying the backend's
// human-readable detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// ConnectionError is a transport-level failure: the backend could not be
// reached at all.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "cannot reach the server, check that it is running"
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// Client issues authenticated HTTP requests against the players API. The
// bearer token is read from the state store on every request, and a 401
// response wipes the persisted session before the error is surfaced.
type Client struct {
	baseURL    string
	store      storage.Store
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client for the API rooted at baseURL (including the
// /api/v1 prefix).
func New(baseURL string, store storage.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		store:   store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With(slog.String("component", "apiclient")),
	}
}

// do performs one HTTP request. Login, register and health opt out of the
// auth header via authed=false since no token exists yet for them.
func (c *Client) do(ctx context.Context, method, path string, body, result any, authed bool) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		var token string
		if c.store.Get(ctx, storage.TokenKey, &token) && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The token is no longer good; drop the persisted session.
		c.store.Remove(ctx, storage.TokenKey)
		c.store.Remove(ctx, storage.UserKey)
		return model.ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil && eb.Detail != "" {
			return &APIError{Status: resp.StatusCode, Detail: eb.Detail}
		}
		return &APIError{Status: resp.StatusCode, Detail: "internal server error"}
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	// Non-JSON success bodies are handed back raw.
	if raw, ok := result.(*[]byte); ok {
		*raw = respBody
		return nil
	}
	// Servers occasionally mislabel JSON bodies, so a non-JSON content type
	// still gets a decode attempt; only a body that really is not JSON is
	// dropped, and loudly.
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		if err := json.Unmarshal(respBody, result); err != nil {
			c.logger.Warn("discarding non-JSON response body",
				slog.String("path", path),
				slog.String("content_type", ct))
		}
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result, true)
}
