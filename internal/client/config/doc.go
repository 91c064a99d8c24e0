// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (see the env tags on Config). A dotenv file
//     given with -e / -env-file, or ./.env when present, is loaded first and
//     never overrides variables that are already set.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base address of the notes API
//	-s string   storage backend (sqlite|redis)
//	-d string   SQLite database path
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds. Absent keys keep the earlier value:
//
//	{
//	  "api_url": "http://localhost:4000",
//	  "request_timeout": "10s",
//	  "storage_backend": "sqlite",
//	  "database_path": "noteapp.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "redis_prefix": "noteapp:",
//	  "session_key_file": "session.key",
//	  "log_backend": "slog",
//	  "log_level": "warn"
//	}
package config
