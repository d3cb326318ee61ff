package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User mirrors the user record returned by /get_user_info and /get_users.
// The API only guarantees Admin; the other fields are filled when present.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Admin     bool   `json:"admin"`
	LastLogin string `json:"last_login,omitempty"`
}

// DisplayName picks the friendliest identifier available.
func (u User) DisplayName() string {
	for _, v := range []string{u.Name, u.Username, u.Email} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if u.ID > 0 {
		return fmt.Sprintf("user #%d", u.ID)
	}
	return "unknown user"
}

// ParsedLastLogin returns LastLogin as time.Time when it can be parsed.
func (u User) ParsedLastLogin() time.Time {
	return parseTime(u.LastLogin)
}

// UserInfoResponse is the /get_user_info payload.
type UserInfoResponse struct {
	User *User `json:"user"`
}

// MessageResponse is the generic {"message": "..."} payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is posted to /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// RegisterRequest is posted to /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusError reports a non-2xx response. Message holds the server's
// "message" (or "msg") field when the body had one.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// Unauthorized reports whether the server rejected the credentials.
func (e *StatusError) Unauthorized() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusUnprocessableEntity
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{http.TimeFormat, time.RFC1123, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
