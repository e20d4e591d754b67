package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/api"
	"github.com/skybi/tools-sys/internal/auth"
	"github.com/skybi/tools-sys/internal/config"
	"github.com/skybi/tools-sys/internal/secret"
	"github.com/skybi/tools-sys/internal/storage"
	"github.com/skybi/tools-sys/internal/storage/cache"
	"github.com/skybi/tools-sys/internal/storage/inmem"
	"github.com/skybi/tools-sys/internal/storage/postgres"
	"github.com/skybi/tools-sys/internal/user"
)

const generatedSecretLength = 32

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.TokenSecret == "" {
		log.Warn().Msg("no token secret configured; generating one that only lives as long as this process")
		cfg.TokenSecret = secret.MustNew(generatedSecretLength)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", redacted(cfg))).Msg("")

	// Initialize the configured storage driver and wrap it into the caching one
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage driver...")
	var underlying storage.Driver
	switch cfg.StorageDriver {
	case "postgres":
		underlying = postgres.New(cfg.PostgresDSN)
	case "inmem":
		underlying = inmem.New()
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}
	if err := underlying.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	driver := cache.New(underlying, cfg.CacheLifetime)
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the caching storage driver")
	}
	defer driver.Close()

	// Create the default admin account if there is no user yet
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("could not hash the default admin password")
	}
	admin, err := user.EnsureDefaultAdmin(context.Background(), driver.Users(), cfg.AdminUsername, hash)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the default admin account")
	}
	if admin != nil {
		log.Info().Str("username", admin.Username).Msg("created the default admin account")
	}

	tokens, err := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenLifetime)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the token issuer")
	}

	// Start up the REST API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the REST API...")
	service := &api.Service{
		Config:  cfg,
		Storage: driver,
		Tokens:  tokens,
	}
	apiErrs := make(chan error, 1)
	service.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the REST API...")
		service.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}

// redacted returns a copy of the configuration without credentials
func redacted(cfg *config.Config) config.Config {
	cpy := *cfg
	cpy.TokenSecret = "<redacted>"
	cpy.AdminPassword = "<redacted>"
	if cpy.PostgresDSN != "" {
		cpy.PostgresDSN = "<redacted>"
	}
	return cpy
}
