package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type sessionFile struct {
	AccessToken string `toml:"access_token"`
}

// File stores the token in a TOML file readable only by the owner.
type File struct {
	Path string
}

var _ Store = File{}

// Load returns ErrNoToken when the file is missing or holds no token.
func (f File) Load() (string, error) {
	bytes, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read session file: %w", err)
	}

	var sf sessionFile
	if err := toml.Unmarshal(bytes, &sf); err != nil {
		return "", fmt.Errorf("parse session file: %w", err)
	}
	token := strings.TrimSpace(sf.AccessToken)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (f File) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	bytes, err := toml.Marshal(sessionFile{AccessToken: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(f.Path, bytes, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Delete is a no-op when the file is already gone.
func (f File) Delete() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
