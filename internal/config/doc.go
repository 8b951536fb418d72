// Package config loads partysync's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/partysync/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	player_id = 76561198000000001
//	coordinator = "http://127.0.0.1:7600"
//	log_path = "~/.local/share/partysync/partysync.log"
//	log_level = "debug"
//	tick_ms = 100
//	poll_ms = 1000
//	coalesce_ms = 2000
//	min_send_ms = 500
//	metrics_bind = "127.0.0.1:9464"
//
// Durations are whole milliseconds; zero or negative values keep the
// default. metrics_bind is empty by default, which disables the metrics
// endpoint. Tilde expansion is performed for log_path.
//
// Missing config files are not an error, but Validate rejects a config
// without a player_id, so a session cannot start until one is set.
package config
