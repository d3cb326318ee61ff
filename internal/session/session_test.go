package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/tokenstore"
)

type fakeBackend struct {
	mu sync.Mutex

	user        *api.User
	userErr     error
	logoutResp  api.MessageResponse
	logoutErr   error
	loginResp   api.LoginResponse
	loginErr    error
	userCalls   int
	logoutCalls int
	lastToken   string
	entered     chan struct{}
	block       chan struct{}
}

func (f *fakeBackend) GetUserInfo(ctx context.Context, token string) (*api.User, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls++
	f.lastToken = token
	return f.user, f.userErr
}

func (f *fakeBackend) Logout(ctx context.Context, token string) (api.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.lastToken = token
	return f.logoutResp, f.logoutErr
}

func (f *fakeBackend) Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func TestStatus_NoTokenIsLoggedOutWithoutRequest(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: 1, Admin: true}}
	m := NewManager(backend, tokenstore.NewMemory(""))

	st, err := m.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.User)
	assert.False(t, st.LoggedIn)
	assert.False(t, st.Admin)
	assert.Zero(t, backend.userCalls, "no network call without a token")
}

func TestStatus_SuccessSetsLoggedInAndAdmin(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: 1, Admin: true}}
	m := NewManager(backend, tokenstore.NewMemory("abc123"))

	st, err := m.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st.User)
	assert.True(t, st.LoggedIn)
	assert.True(t, st.Admin)
	assert.Equal(t, int64(1), st.User.ID)
	assert.Equal(t, "abc123", backend.lastToken)

	backend.user = &api.User{ID: 2, Admin: false}
	st, err = m.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	assert.False(t, st.Admin)
}

func TestStatus_HTTPFailureDowngradesState(t *testing.T) {
	backend := &fakeBackend{user: &api.User{ID: 1, Admin: true}}
	m := NewManager(backend, tokenstore.NewMemory("abc123"))

	_, err := m.Status(context.Background())
	require.NoError(t, err)

	backend.user = nil
	backend.userErr = &api.StatusError{Method: http.MethodGet, Path: "/get_user_info", Code: http.StatusUnauthorized}

	st, err := m.Status(context.Background())
	require.NoError(t, err, "HTTP rejection is encoded in state, not returned")
	assert.False(t, st.LoggedIn)
	assert.False(t, st.Admin)
	assert.Nil(t, st.User)
	var statusErr *api.StatusError
	assert.True(t, errors.As(st.LastError, &statusErr))
}

func TestStatus_TransportFailureReturnsError(t *testing.T) {
	backend := &fakeBackend{userErr: errors.New("execute request: connection refused")}
	m := NewManager(backend, tokenstore.NewMemory("abc123"))

	st, err := m.Status(context.Background())
	require.Error(t, err)
	assert.False(t, st.LoggedIn)
	assert.Equal(t, err, st.LastError)
}

func TestStatus_MissingUserIsFailure(t *testing.T) {
	m := NewManager(&fakeBackend{}, tokenstore.NewMemory("abc123"))

	st, err := m.Status(context.Background())
	require.ErrorIs(t, err, ErrNoUser)
	assert.False(t, st.LoggedIn)
}

func TestStatus_ReadsExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(4 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "1",
		"admin": false,
		"exp":   exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	m := NewManager(&fakeBackend{user: &api.User{ID: 1}}, tokenstore.NewMemory(token))
	st, err := m.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.ExpiresAt.Equal(exp), "ExpiresAt = %v, want %v", st.ExpiresAt, exp)
	assert.Greater(t, st.Remaining(time.Now()), 3*time.Hour)

	_, ok := ExpiresAt("abc123")
	assert.False(t, ok)
}

func TestLogout_ReturnsServerMessageAndKeepsToken(t *testing.T) {
	store := tokenstore.NewMemory("abc123")
	backend := &fakeBackend{logoutResp: api.MessageResponse{Message: "Bye now"}}
	m := NewManager(backend, store)

	msg, err := m.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bye now", msg)
	assert.Equal(t, "abc123", backend.lastToken)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token, "token is only removed by Clear")

	backend.logoutResp = api.MessageResponse{}
	msg, err = m.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultLogoutMessage, msg)
}

func TestLogout_FailureKeepsToken(t *testing.T) {
	store := tokenstore.NewMemory("abc123")
	backend := &fakeBackend{logoutErr: &api.StatusError{Code: http.StatusInternalServerError}}
	m := NewManager(backend, store)

	_, err := m.Logout(context.Background())
	require.Error(t, err)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestClear_RemovesTokenAndState(t *testing.T) {
	store := tokenstore.NewMemory("abc123")
	m := NewManager(&fakeBackend{user: &api.User{ID: 1, Admin: true}}, store)

	_, err := m.Status(context.Background())
	require.NoError(t, err)
	require.True(t, m.Snapshot().LoggedIn)

	require.NoError(t, m.Clear())
	snap := m.Snapshot()
	assert.False(t, snap.LoggedIn)
	assert.Nil(t, snap.User)

	_, err = store.Load()
	require.ErrorIs(t, err, tokenstore.ErrNoToken)
}

func TestClear_DiscardsInFlightStatus(t *testing.T) {
	backend := &fakeBackend{
		user:    &api.User{ID: 1},
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	m := NewManager(backend, tokenstore.NewMemory("abc123"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Status(context.Background())
	}()

	<-backend.entered
	require.NoError(t, m.Clear())
	close(backend.block)
	<-done

	assert.False(t, m.Snapshot().LoggedIn)
}

func TestLogin_StoresToken(t *testing.T) {
	store := tokenstore.NewMemory("")
	backend := &fakeBackend{loginResp: api.LoginResponse{Message: "Login successful", AccessToken: "fresh"}}
	m := NewManager(backend, store)

	msg, err := m.Login(context.Background(), " alice ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", msg)

	token, err := m.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)

	backend.loginErr = &api.StatusError{Code: http.StatusUnauthorized}
	_, err = m.Login(context.Background(), "alice", "bad")
	require.Error(t, err)
	token, _ = m.Token()
	assert.Equal(t, "fresh", token)
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	m := NewManager(&fakeBackend{user: &api.User{ID: 1, Name: "Alice"}}, tokenstore.NewMemory("abc123"))
	_, err := m.Status(context.Background())
	require.NoError(t, err)

	snap := m.Snapshot()
	snap.User.Name = "Mallory"
	assert.Equal(t, "Alice", m.Snapshot().User.Name)
}
