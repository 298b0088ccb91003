package config

import (
	"os"
	"time"
)

const (
	EnvToken = "ACCOUNTKEEPER_TOKEN"
	EnvAddr  = "ACCOUNTKEEPER_ADDR"
)

// Config holds runtime settings for the AccountKeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - AccessToken: token attached to every call; empty for public calls.
//   - RequestTimeout: deadline applied to each call.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.RequestTimeout = 10 * time.Second
}

// Load constructs a Config from defaults, the optional JSON file at path and
// the environment. Later sources take precedence over earlier ones.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	return cfg, nil
}

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv(EnvToken); ok && v != "" {
		cfg.AccessToken = v
	}
}
