package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/myjar/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string           gRPC bind address (e.g., ":50051")
//	-l string           HTTP bind address (e.g., ":8080")
//	-d string           database DSN
//	-p string           encryption passphrase
//	-f string           passphrase file path or s3://bucket/key
//	-state string       directory holding the generated passphrase
//	-ask                prompt for the passphrase on the terminal
//	-k string           key derivation: evp or argon2id
//	-i string           id scheme: hash or uuid
//	-g string           phone region (e.g., "GB")
//	-twilio-sid string  Twilio account SID
//	-twilio-token string
//	-twilio-url string
//	-twilio-timeout duration
//	-redis string       Redis URL of the lookup cache
//	-cache-ttl duration lookup cache entry lifetime
//	-u string           S3 access key
//	-w string           S3 secret key
//	-r string           S3 region
//	-e string           S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-m int              maximum page size
//	-log-level string
//	-log-format string
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-l", "-d", "-p", "-f", "-state", "-k", "-i", "-g",
		"-twilio-sid", "-twilio-token", "-twilio-url", "-twilio-timeout",
		"-redis", "-cache-ttl", "-u", "-w", "-r", "-e", "-m",
		"-log-level", "-log-format",
	}, "-ask")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "l", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	fs.StringVar(&config.Passphrase, "p", config.Passphrase, "encryption passphrase")
	fs.StringVar(&config.PassphrasePath, "f", config.PassphrasePath, "passphrase file or s3://bucket/key")
	fs.StringVar(&config.StateDir, "state", config.StateDir, "directory of the generated passphrase")
	fs.BoolVar(&config.AskPassphrase, "ask", config.AskPassphrase, "ask for the passphrase")
	fs.StringVar(&config.KeyDerivation, "k", config.KeyDerivation, "key derivation (evp, argon2id)")

	fs.StringVar(&config.IDScheme, "i", config.IDScheme, "id scheme (hash, uuid)")
	fs.StringVar(&config.PhoneRegion, "g", config.PhoneRegion, "phone region")

	fs.StringVar(&config.TwilioAccountSID, "twilio-sid", config.TwilioAccountSID, "Twilio account SID")
	fs.StringVar(&config.TwilioAuthToken, "twilio-token", config.TwilioAuthToken, "Twilio auth token")
	fs.StringVar(&config.TwilioBaseURL, "twilio-url", config.TwilioBaseURL, "Twilio lookup base URL")
	fs.DurationVar(&config.TwilioTimeout, "twilio-timeout", config.TwilioTimeout, "Twilio lookup timeout")

	fs.StringVar(&config.RedisURL, "redis", config.RedisURL, "Redis URL of the lookup cache")
	fs.DurationVar(&config.LookupCacheTTL, "cache-ttl", config.LookupCacheTTL, "lookup cache TTL")

	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "w", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.IntVar(&config.MaxPageSize, "m", config.MaxPageSize, "maximum page size")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format (text, json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
