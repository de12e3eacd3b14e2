// Package config loads the Locador console configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/locador/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. LOCADOR_API_URL, LOCADOR_USERNAME, LOCADOR_PASSWORD and LOCADOR_TOKEN
//     override whatever the file says
//
// # Default Values
//
//   - API URL: http://127.0.0.1:8000
//   - Page size: 50 (capped at 500)
//   - Poll interval: 5s
//   - Request timeout: 10s
//   - Log file: ~/.local/state/locador/console.log
//   - Log level: info
//
// # TOML Format
//
//	api_url = "https://financeiro.example.com/api"
//	username = "ana"
//	page_size = 100
//	poll_seconds = 10
//	request_timeout_seconds = 15
//	log_file = "~/.local/state/locador/console.log"
//	log_level = "debug"
//
// Either username/password or a pre-issued token is needed to reach the API.
// Keeping the password in the environment is preferred over the file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and TOML
// parse errors. Missing config files are NOT an error.
package config
