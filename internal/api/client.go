package api

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
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Backend is the set of calls the session layer and views make.
// It is implemented by *Client and can be faked in tests.
type Backend interface {
	GetUserInfo(ctx context.Context, token string) (*User, error)
	Logout(ctx context.Context, token string) (MessageResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (MessageResponse, error)
	FetchJSON(ctx context.Context, token, path string) (map[string]any, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Client talks to the parking API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL    = "http://127.0.0.1:5000"
	defaultUserAgent = "parkview/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for apiURL. A bare host:port is treated as http.
func NewClient(apiURL string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetHTTPClient swaps the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetUserInfo resolves the user the token belongs to.
func (c *Client) GetUserInfo(ctx context.Context, token string) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UserInfoResponse
	if err := c.do(ctx, http.MethodGet, "/get_user_info", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Logout revokes the token on the server. The body is fully decoded before
// returning so the message is always the server's final answer.
func (c *Client) Logout(ctx context.Context, token string) (MessageResponse, error) {
	if c == nil {
		return MessageResponse{}, fmt.Errorf("client is nil")
	}
	var payload MessageResponse
	if err := c.do(ctx, http.MethodPost, "/logout", token, nil, &payload); err != nil {
		return MessageResponse{}, err
	}
	return payload, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if c == nil {
		return LoginResponse{}, fmt.Errorf("client is nil")
	}
	var payload LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &payload); err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return LoginResponse{}, fmt.Errorf("login response carried no access token")
	}
	return payload, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (MessageResponse, error) {
	if c == nil {
		return MessageResponse{}, fmt.Errorf("client is nil")
	}
	var payload MessageResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &payload); err != nil {
		return MessageResponse{}, err
	}
	return payload, nil
}

// FetchJSON GETs path and decodes the body as a JSON object.
func (c *Client) FetchJSON(ctx context.Context, token, path string) (map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	payload := map[string]any{}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().
		Str("method", method).
		Str("path", rel.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    rel.Path,
			Code:    resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls "message" or "msg" out of an error body. Flask routes use
// the former, flask-jwt-extended the latter.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Msg
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
