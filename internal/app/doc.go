// Package app is the composition root of parkview.
//
// Setup turns configuration into the pieces every entry point needs:
//
//  1. Load ~/.config/parkview/config.toml plus .env and PARKVIEW_* overrides
//  2. Point the zerolog global logger at <log_dir>/parkview.log
//  3. Choose the token store (TOML file or OS keyring)
//  4. Build the API client and the session manager on top of it
//
// Run then mounts the Bubble Tea UI with the configured toast notifier and
// blocks until the user quits. The CLI subcommands call Setup directly and
// drive the session manager without a UI.
//
// Configuration and logger failures are fatal. Everything after startup
// (network errors, rejected tokens) is handled inside the session and the UI.
package app
