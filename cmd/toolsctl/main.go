package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/config"
	"github.com/skybi/tools-sys/internal/session"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.LoadClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd(cfg).ExecuteContext(ctx); err != nil {
		// Login errors were already rendered next to the login page
		var sessionErr *session.Error
		if !errors.As(err, &sessionErr) {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		cancel()
		os.Exit(1)
	}
}
