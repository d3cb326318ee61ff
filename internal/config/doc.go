// Package config loads parkview's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/parkview/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. PARKVIEW_API_URL, PARKVIEW_LOG_LEVEL and PARKVIEW_TOKEN_STORE override
//     the result (.env and .env.local in the working directory are honoured)
//
// # Default Values
//
//   - API endpoint: http://127.0.0.1:5000
//   - Token store: file at ~/.config/parkview/session.toml
//   - Log file: ~/.local/share/parkview/parkview.log
//   - Toasts: top-center, slide transition, close on click, 5s auto close
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:5000"
//	token_store = "keyring"
//	log_level = "debug"
//
//	[toast]
//	position = "top-right"
//	auto_close_ms = 3000
package config
