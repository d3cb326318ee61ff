package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/tokenstore"
)

// DefaultLogoutMessage is shown when the server's logout body has no message.
const DefaultLogoutMessage = "Logout successful"

// ErrNoUser is returned when /get_user_info succeeds without a user record.
var ErrNoUser = errors.New("user info response carried no user")

// State is what views render. LoggedIn is true only when the last user-info
// fetch succeeded; Admin is false whenever LoggedIn is.
type State struct {
	User        *api.User
	LoggedIn    bool
	Admin       bool
	ExpiresAt   time.Time
	LastChecked time.Time
	LastError   error
}

// Provider is the session capability handed to every view.
type Provider interface {
	Status(ctx context.Context) (State, error)
	Logout(ctx context.Context) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Clear() error
	Token() (string, error)
	Snapshot() State
}

// Backend is the subset of the API the session needs.
type Backend interface {
	GetUserInfo(ctx context.Context, token string) (*api.User, error)
	Logout(ctx context.Context, token string) (api.MessageResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
}

// Manager owns the single session state of the process.
type Manager struct {
	backend Backend
	tokens  tokenstore.Store
	now     func() time.Time

	mu    sync.RWMutex
	state State
	epoch uint64
}

var _ Provider = (*Manager)(nil)

// NewManager builds a Manager. The state starts logged out.
func NewManager(backend Backend, tokens tokenstore.Store) *Manager {
	return &Manager{
		backend: backend,
		tokens:  tokens,
		now:     time.Now,
	}
}

// Status reads the stored token and, when there is one, asks the API who it
// belongs to. Without a token no request is made. An HTTP rejection
// downgrades the state and is not returned; transport failures are.
func (m *Manager) Status(ctx context.Context) (State, error) {
	epoch := m.currentEpoch()

	token, err := m.tokens.Load()
	if errors.Is(err, tokenstore.ErrNoToken) {
		m.commit(epoch, State{LastChecked: m.now()})
		return m.Snapshot(), nil
	}
	if err != nil {
		m.commit(epoch, State{LastChecked: m.now(), LastError: err})
		return m.Snapshot(), fmt.Errorf("load token: %w", err)
	}

	user, err := m.getUserInfo(ctx, epoch, token)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			return m.Snapshot(), nil
		}
		return m.Snapshot(), err
	}

	next := State{
		User:        user,
		LoggedIn:    true,
		Admin:       user.Admin,
		LastChecked: m.now(),
	}
	if exp, ok := ExpiresAt(token); ok {
		next.ExpiresAt = exp
	}
	m.commit(epoch, next)
	return m.Snapshot(), nil
}

// GetUserInfo calls /get_user_info with token. On failure the session drops
// to logged out and the error is returned.
func (m *Manager) GetUserInfo(ctx context.Context, token string) (*api.User, error) {
	return m.getUserInfo(ctx, m.currentEpoch(), token)
}

func (m *Manager) getUserInfo(ctx context.Context, epoch uint64, token string) (*api.User, error) {
	user, err := m.backend.GetUserInfo(ctx, token)
	if err == nil && user == nil {
		err = ErrNoUser
	}
	if err != nil {
		m.commit(epoch, State{LastChecked: m.now(), LastError: err})
		log.Warn().Err(err).Msg("user info request failed")
		return nil, err
	}
	dup := *user
	return &dup, nil
}

// Logout revokes the token remotely and returns the server's message. The
// local token is left in place; call Clear once the user has acknowledged.
func (m *Manager) Logout(ctx context.Context) (string, error) {
	token, err := m.tokens.Load()
	if err != nil && !errors.Is(err, tokenstore.ErrNoToken) {
		return "", fmt.Errorf("load token: %w", err)
	}

	resp, err := m.backend.Logout(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("logout request failed")
		return "", err
	}
	if msg := strings.TrimSpace(resp.Message); msg != "" {
		return msg, nil
	}
	return DefaultLogoutMessage, nil
}

// Login exchanges credentials for a token and stores it.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := m.backend.Login(ctx, api.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return "", err
	}
	if err := m.tokens.Save(resp.AccessToken); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	log.Info().Str("username", strings.TrimSpace(username)).Msg("logged in")
	return resp.Message, nil
}

// Clear removes the stored token and resets the state. Any status check
// already in flight is discarded when it completes.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.epoch++
	m.state = State{LastChecked: m.now()}
	m.mu.Unlock()

	if err := m.tokens.Delete(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token.
func (m *Manager) Token() (string, error) {
	return m.tokens.Load()
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.state
	if m.state.User != nil {
		user := *m.state.User
		snap.User = &user
	}
	return snap
}

func (m *Manager) currentEpoch() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch
}

// commit replaces the state unless Clear ran since epoch was taken.
func (m *Manager) commit(epoch uint64, next State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		return
	}
	if !next.LoggedIn {
		next.User = nil
		next.Admin = false
	}
	m.state = next
}
