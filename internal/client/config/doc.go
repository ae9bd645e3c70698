// Package config loads runtime configuration for the FitFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config, or $FITFLOW_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend (http://host:port)
//	-d string   path of the local database file
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations are timex.Duration, so values can be strings like "3s" or
// integer nanoseconds. Missing keys keep their current value:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "database_path": "fitflow.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
