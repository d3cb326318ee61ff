package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "parkview"

// Keyring stores the token in the OS keychain / credential manager. Profile
// separates tokens for different API endpoints.
type Keyring struct {
	Profile string
}

var _ Store = Keyring{}

func (k Keyring) user() string {
	if k.Profile == "" {
		return Key
	}
	return fmt.Sprintf("%s-%s", Key, k.Profile)
}

func (k Keyring) Load() (string, error) {
	token, err := keyring.Get(keyringService, k.user())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (k Keyring) Save(token string) error {
	if err := keyring.Set(keyringService, k.user(), token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (k Keyring) Delete() error {
	if err := keyring.Delete(keyringService, k.user()); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
