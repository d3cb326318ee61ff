// Package tokenstore persists the bearer token issued by the parking API.
//
// There is one token per profile, stored under the fixed key "access_token".
package tokenstore

import (
	"errors"
	"sync"
)

// Key is the fixed name the token is stored under.
const Key = "access_token"

// ErrNoToken is returned by Load when no token has been stored.
var ErrNoToken = errors.New("no access token stored")

// Store reads and writes the session token.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// Memory keeps the token in process memory; nothing survives a restart.
type Memory struct {
	mu    sync.Mutex
	token string
}

var _ Store = (*Memory)(nil)

// NewMemory returns a Memory store seeded with token (may be empty).
func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

func (m *Memory) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *Memory) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
