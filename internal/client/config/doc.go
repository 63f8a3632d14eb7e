// Package config loads runtime configuration for the DocuSage CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (DOCUSAGE_SERVER, DOCUSAGE_TIMEOUT, DOCUSAGE_TOKEN_FILE).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-w int      request timeout (seconds)
//	-o string   file the access token is kept in between runs
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "30s",
//	  "token_file": "/home/me/.config/docusage/token"
//	}
package config
