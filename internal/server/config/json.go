package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/myjar/internal/flagx"
	"github.com/dmitrijs2005/myjar/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. Fields left out of the file keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	Passphrase       string         `json:"passphrase"`
	PassphrasePath   string         `json:"passphrase_path"`
	StateDir         string         `json:"state_dir"`
	AskPassphrase    *bool          `json:"ask_passphrase"`
	KeyDerivation    string         `json:"key_derivation"`
	IDScheme         string         `json:"id_scheme"`
	PhoneRegion      string         `json:"phone_region"`
	TwilioAccountSID string         `json:"twilio_account_sid"`
	TwilioAuthToken  string         `json:"twilio_auth_token"`
	TwilioBaseURL    string         `json:"twilio_base_url"`
	TwilioTimeout    timex.Duration `json:"twilio_timeout"`
	RedisURL         string         `json:"redis_url"`
	LookupCacheTTL   timex.Duration `json:"lookup_cache_ttl"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	MaxPageSize      int            `json:"max_page_size"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flag into config. Without the flag nothing is loaded. If the
// file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.Passphrase, c.Passphrase)
	setString(&config.PassphrasePath, c.PassphrasePath)
	setString(&config.StateDir, c.StateDir)
	if c.AskPassphrase != nil {
		config.AskPassphrase = *c.AskPassphrase
	}
	setString(&config.KeyDerivation, c.KeyDerivation)
	setString(&config.IDScheme, c.IDScheme)
	setString(&config.PhoneRegion, c.PhoneRegion)
	setString(&config.TwilioAccountSID, c.TwilioAccountSID)
	setString(&config.TwilioAuthToken, c.TwilioAuthToken)
	setString(&config.TwilioBaseURL, c.TwilioBaseURL)
	if c.TwilioTimeout.Duration > 0 {
		config.TwilioTimeout = c.TwilioTimeout.Duration
	}
	setString(&config.RedisURL, c.RedisURL)
	if c.LookupCacheTTL.Duration > 0 {
		config.LookupCacheTTL = c.LookupCacheTTL.Duration
	}
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.MaxPageSize > 0 {
		config.MaxPageSize = c.MaxPageSize
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
