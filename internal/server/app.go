// Package server initializes and runs the directory server. It opens the
// database, sets up the mobile number cipher and phone verification, and
// runs the gRPC and HTTP endpoints until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/cryptox"
	"github.com/dmitrijs2005/myjar/internal/logging"
	"github.com/dmitrijs2005/myjar/internal/server/config"
	"github.com/dmitrijs2005/myjar/internal/server/directory"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/httpapi"
	"github.com/dmitrijs2005/myjar/internal/server/idgen"
	"github.com/dmitrijs2005/myjar/internal/server/metrics"
	"github.com/dmitrijs2005/myjar/internal/server/phone"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/myjar/internal/server/services"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	gs "github.com/dmitrijs2005/myjar/internal/server/grpc"
)

// Test seams.
var (
	openDatabase   = repomanager.Open
	readPassphrase = term.ReadPassword
	promptOut      io.Writer = os.Stderr
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	redis     *redis.Client
	metrics   *metrics.Metrics
	directory *directory.Directory
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	db, dialect, err := openDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, metrics: metrics.New()}

	cipher, err := app.initCipher(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	logger.Info(ctx, "Cipher initialized", "passphrase", cipher.PassphraseLocation())

	ids, err := idgen.New(idgen.Scheme(c.IDScheme))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	verifier, err := app.initVerifier(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.directory = directory.New(
		services.NewClientService(db, rm, ids),
		services.NewSearchService(db, rm),
		format.NewValidator(verifier, c.PhoneRegion, logger),
		cipher,
		app.metrics,
		logger,
	)

	return app, nil
}

// initCipher resolves the passphrase: typed in, given in config, stored on
// S3 or stored in a local file, in that order.
func (app *App) initCipher(ctx context.Context) (*cryptox.Cipher, error) {
	c := app.config
	opts := cryptox.Options{
		Passphrase: c.Passphrase,
		StateDir:   c.StateDir,
		Derivation: cryptox.KeyDerivation(c.KeyDerivation),
	}

	if c.AskPassphrase {
		fmt.Fprint(promptOut, "Enter passphrase: ")
		pass, err := readPassphrase(int(os.Stdin.Fd()))
		fmt.Fprintln(promptOut)
		if err != nil {
			return nil, fmt.Errorf("%w: read passphrase: %w", common.ErrConfiguration, err)
		}
		opts.Passphrase = string(pass)
		common.WipeByteArray(pass)
	}

	if cryptox.IsS3Location(c.PassphrasePath) {
		src, err := cryptox.NewS3KeySource(ctx, c.PassphrasePath, cryptox.S3Options{
			Region:       c.S3Region,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
		}
		opts.Source = src
	} else {
		opts.PassphrasePath = c.PassphrasePath
	}

	return cryptox.Initialize(ctx, opts)
}

// initVerifier picks the phone verifier. Without Twilio credentials only
// the local pattern is used; with a Redis URL, lookups are cached.
func (app *App) initVerifier(ctx context.Context) (phone.Verifier, error) {
	c := app.config

	var v phone.Verifier = phone.PatternVerifier{}
	if c.TwilioAccountSID != "" {
		v = phone.NewTwilioVerifier(c.TwilioAccountSID, c.TwilioAuthToken, c.TwilioBaseURL, c.TwilioTimeout)
		app.logger.Info(ctx, "Phone lookups enabled", "base_url", c.TwilioBaseURL)
	}

	if c.RedisURL != "" {
		opts, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		app.redis = client
		v = phone.NewCachedVerifier(v, client, c.LookupCacheTTL, app.logger)
	}

	return phone.NewObservedVerifier(v, app.metrics.ObservePhoneLookup), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves both endpoints until ctx is cancelled, a signal arrives or one
// of the servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.directory, app.metrics, app.config.MaxPageSize)
	httpServer := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.directory, httpapi.Options{
		Observer:    app.metrics,
		Metrics:     app.metrics.Handler(),
		Health:      app.db,
		MaxPageSize: app.config.MaxPageSize,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })

	err := g.Wait()
	app.Close()
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}
	return err
}

// Close releases the database and cache connections.
func (app *App) Close() {
	if app.redis != nil {
		_ = app.redis.Close()
		app.redis = nil
	}
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
}
