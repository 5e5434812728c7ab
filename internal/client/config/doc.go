// Package config loads runtime configuration for the TaskFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables TASKFLOW_SERVER_URL, TASKFLOW_TOKEN_FILE and
//     TASKFLOW_REQUEST_TIMEOUT.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the API, e.g. http://localhost:8080/api
//	-t string     file holding the saved access token
//	-timeout dur  per-request timeout, e.g. 10s
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8080/api",
//	  "token_file": "/home/me/.config/taskflow/token",
//	  "request_timeout": "10s"
//	}
//
// Arguments left after the flags are the command to run.
package config
