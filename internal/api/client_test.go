package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "127.0.0.1:5000", u.Host)

	u, err = parseBaseURL("example.com:1234")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:1234", u.String())

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:1234", u.String())
}

func TestClient_GetUserInfoSendsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUA, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		if r.Method != http.MethodGet || r.URL.Path != "/get_user_info" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": 1, "username": "alice", "admin": true}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	user, err := c.GetUserInfo(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.Admin)
	assert.Equal(t, "alice", user.DisplayName())

	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.True(t, strings.HasPrefix(gotUA, "parkview/"), "User-Agent = %q", gotUA)
	assert.Len(t, gotRequestID, 36)
}

func TestClient_LoginRegisterLogout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/login":
			var req LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Username != "alice" || req.Password != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message": "Invalid username or password"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(LoginResponse{Message: "Login successful", AccessToken: "tok"})
		case "/register":
			var req RegisterRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Email == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "User registered successfully"})
		case "/logout":
			if r.Method != http.MethodPost || r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "Logout successful"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	resp, err := c.Login(ctx, LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)

	_, err = c.Login(ctx, LoginRequest{Username: "alice", Password: "nope"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.True(t, statusErr.Unauthorized())
	assert.Equal(t, "Invalid username or password", statusErr.Message)

	msg, err := c.Register(ctx, RegisterRequest{Name: "A", Username: "a", Email: "a@x", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg.Message)

	_, err = c.Register(ctx, RegisterRequest{})
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)

	out, err := c.Logout(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Logout successful", out.Message)
}

func TestClient_FetchJSONAndErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user_summary":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"total_bookings": 3, "active": true}`))
		case "/broken":
			_, _ = w.Write([]byte("{not-json"))
		case "/admin_dashboard":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg": "Missing Authorization Header"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	payload, err := c.FetchJSON(ctx, "tok", "/user_summary")
	require.NoError(t, err)
	assert.EqualValues(t, 3, payload["total_bookings"])

	_, err = c.FetchJSON(ctx, "tok", "/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	_, err = c.FetchJSON(ctx, "", "/admin_dashboard")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Missing Authorization Header", statusErr.Message)
	assert.Contains(t, err.Error(), "returned status 401")
}

func TestUser_ParsedLastLogin(t *testing.T) {
	u := User{LastLogin: "Mon, 19 Oct 2026 10:00:00 GMT"}
	got := u.ParsedLastLogin()
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, 10, got.Hour())

	assert.True(t, User{}.ParsedLastLogin().IsZero())
	assert.Equal(t, "user #7", User{ID: 7}.DisplayName())
}
