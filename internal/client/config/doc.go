// Package config loads runtime configuration for the AccountKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with the --config / -c flag.
//  3. The ACCOUNTKEEPER_TOKEN and ACCOUNTKEEPER_ADDR environment variables.
//  4. Command-line flags, applied by the cli package on top of Load's result.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "request_timeout": "5s"
//	}
package config
