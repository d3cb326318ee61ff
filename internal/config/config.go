package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything parkview needs to reach the parking API and
// persist the session.
type Config struct {
	APIURL     string
	TokenStore string
	TokenPath  string
	LogDir     string
	LogLevel   string
	LogFormat  string
	Toast      ToastConfig
}

// ToastConfig mirrors the notification plugin options of the web client.
type ToastConfig struct {
	Position         string
	Transition       string
	CloseOnClick     bool
	PauseOnFocusLoss bool
	PauseOnHover     bool
	CloseButton      bool
	AutoClose        time.Duration
}

// Token store backends.
const (
	TokenStoreFile    = "file"
	TokenStoreKeyring = "keyring"
)

const (
	defaultConfigPath = "~/.config/parkview/config.toml"
	defaultTokenPath  = "~/.config/parkview/session.toml"
	defaultLogDir     = "~/.local/share/parkview"
	defaultAPIURL     = "http://127.0.0.1:5000"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultAutoClose  = 5 * time.Second
)

type rawConfig struct {
	APIURL     string `toml:"api_url"`
	TokenStore string `toml:"token_store"`
	TokenPath  string `toml:"token_path"`
	LogDir     string `toml:"log_dir"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	Toast      struct {
		Position         string `toml:"position"`
		Transition       string `toml:"transition"`
		CloseOnClick     *bool  `toml:"close_on_click"`
		PauseOnFocusLoss *bool  `toml:"pause_on_focus_loss"`
		PauseOnHover     *bool  `toml:"pause_on_hover"`
		CloseButton      *bool  `toml:"close_button"`
		AutoCloseMS      int    `toml:"auto_close_ms"`
	} `toml:"toast"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		APIURL:     defaultAPIURL,
		TokenStore: TokenStoreFile,
		TokenPath:  mustExpand(defaultTokenPath),
		LogDir:     mustExpand(defaultLogDir),
		LogLevel:   defaultLogLevel,
		LogFormat:  defaultLogFormat,
		Toast:      DefaultToast(),
	}
}

// DefaultToast is the fixed notification setup installed at bootstrap.
func DefaultToast() ToastConfig {
	return ToastConfig{
		Position:         "top-center",
		Transition:       "slide",
		CloseOnClick:     true,
		PauseOnFocusLoss: true,
		PauseOnHover:     false,
		CloseButton:      true,
		AutoClose:        defaultAutoClose,
	}
}

// Load reads the parkview config, falling back to defaults when missing.
// Values from .env files and PARKVIEW_* variables win over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Defaults()

	bytes, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := parse(bytes, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadReader parses config from r on top of the defaults. Environment
// overrides are not applied.
func LoadReader(r io.Reader) (Config, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Defaults()
	if err := parse(bytes, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(bytes []byte, cfg *Config) error {
	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.TokenStore)); v != "" {
		cfg.TokenStore = v
	}
	if v := strings.TrimSpace(raw.TokenPath); v != "" {
		cfg.TokenPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = v
	}

	t := raw.Toast
	if v := strings.TrimSpace(t.Position); v != "" {
		cfg.Toast.Position = v
	}
	if v := strings.TrimSpace(t.Transition); v != "" {
		cfg.Toast.Transition = v
	}
	setBool(&cfg.Toast.CloseOnClick, t.CloseOnClick)
	setBool(&cfg.Toast.PauseOnFocusLoss, t.PauseOnFocusLoss)
	setBool(&cfg.Toast.PauseOnHover, t.PauseOnHover)
	setBool(&cfg.Toast.CloseButton, t.CloseButton)
	if t.AutoCloseMS > 0 {
		cfg.Toast.AutoClose = time.Duration(t.AutoCloseMS) * time.Millisecond
	}

	return cfg.Validate()
}

// Validate reports settings parkview cannot run with.
func (c Config) Validate() error {
	switch c.TokenStore {
	case TokenStoreFile, TokenStoreKeyring:
	default:
		return fmt.Errorf("token_store %q: want %q or %q", c.TokenStore, TokenStoreFile, TokenStoreKeyring)
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url is empty")
	}
	return nil
}

// LogPath returns the file the logger writes to.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), "parkview.log")
	}
	return filepath.Join(c.LogDir, "parkview.log")
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PARKVIEW_API_URL")); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PARKVIEW_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("PARKVIEW_TOKEN_STORE"))); v != "" {
		cfg.TokenStore = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
