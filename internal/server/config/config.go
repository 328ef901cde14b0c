// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/myjar/internal/common"
)

// Config holds runtime settings for the myjar server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses of the two APIs.
//   - DatabaseDSN: postgres:// DSN (pgx) or sqlite://path (embedded SQLite).
//   - Passphrase / PassphrasePath / StateDir / AskPassphrase: where the
//     encryption passphrase comes from. PassphrasePath may be s3://bucket/key.
//   - KeyDerivation: "evp" (compatible with stored data) or "argon2id".
//   - IDScheme: "hash" or "uuid".
//   - PhoneRegion: region mobile numbers must belong to.
//   - Twilio*: phone lookup service; lookups are off without an account SID.
//   - RedisURL / LookupCacheTTL: optional cache of successful lookups.
//   - S3*: credentials and endpoint used when PassphrasePath is on S3.
//   - MaxPageSize: upper bound of a requested page size.
//   - LogLevel / LogFormat: "debug|info|warn|error" and "text|json".
type Config struct {
	EndpointAddrGRPC string
	EndpointAddrHTTP string
	DatabaseDSN      string
	Passphrase       string
	PassphrasePath   string
	StateDir         string
	AskPassphrase    bool
	KeyDerivation    string
	IDScheme         string
	PhoneRegion      string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioBaseURL    string
	TwilioTimeout    time.Duration
	RedisURL         string
	LookupCacheTTL   time.Duration
	S3AccessKey      string
	S3SecretKey      string
	S3Region         string
	S3BaseEndpoint   string
	MaxPageSize      int
	LogLevel         string
	LogFormat        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = "sqlite://myjar.db"
	c.KeyDerivation = "evp"
	c.IDScheme = "hash"
	c.PhoneRegion = "GB"
	c.TwilioBaseURL = "https://lookups.twilio.com"
	c.TwilioTimeout = 5 * time.Second
	c.LookupCacheTTL = 24 * time.Hour
	c.S3Region = "us-east-1"
	c.MaxPageSize = common.PageSizeCap
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
