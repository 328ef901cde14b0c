package config

import (
	"time"

	"github.com/dmitrijs2005/myjar/internal/common"
)

// Config holds runtime settings for the myjar admin CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the directory gRPC endpoint.
//   - RequestTimeout: deadline of a single call to the server.
//   - PageSize: clients shown per page by list and find.
//   - OnlineCheckInterval: how often the CLI probes server reachability.
type Config struct {
	ServerEndpointAddr  string
	RequestTimeout      time.Duration
	PageSize            int
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
	c.PageSize = common.DefaultPageSize
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
