package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pumpwatch/pumpwatch/internal/blacklist"
	"github.com/pumpwatch/pumpwatch/internal/config"
	"github.com/pumpwatch/pumpwatch/internal/feed"
	"github.com/pumpwatch/pumpwatch/internal/notify"
	"github.com/pumpwatch/pumpwatch/internal/pipeline"
	"github.com/pumpwatch/pumpwatch/internal/rugcheck"
	"github.com/pumpwatch/pumpwatch/internal/storage"
	"github.com/pumpwatch/pumpwatch/internal/storage/memory"
	"github.com/pumpwatch/pumpwatch/internal/storage/postgres"
	"github.com/pumpwatch/pumpwatch/internal/tweetscout"
)

func main() {
	// 1. Parse flags.
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	stubMode := flag.Bool("stub", false, "Run against in-memory storage and a canned rugcheck (no network, no database)")
	flag.Parse()

	// Secrets referenced from the YAML via ${VAR} can live in a .env file.
	_ = godotenv.Load()

	// 2. Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config from %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	// 3. Setup logging.
	setupLogging(cfg.General)

	log.Info().Msg("=============================================")
	log.Info().Msg("pumpwatch - Starting")
	log.Info().Msg("FETCH -> CLASSIFY -> FILTER -> PERSIST -> ACT")
	log.Info().Msg("=============================================")

	log.Info().
		Str("instance_id", cfg.General.InstanceID).
		Bool("dry_run", cfg.General.DryRun).
		Bool("stub_mode", *stubMode).
		Str("feed_url", cfg.Feed.URL).
		Int("poll_interval_s", cfg.Feed.PollIntervalS).
		Bool("stream", cfg.Feed.StreamEnabled).
		Bool("tweetscout", cfg.TweetScout.Enabled).
		Msg("Configuration loaded")

	if err := cfg.Validate(); err != nil && !*stubMode {
		log.Fatal().Err(err).Msg("Configuration validation failed")
	}

	// 4. Setup context with cancellation and signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Warn().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	// 5. Storage.
	var tokenStore storage.TokenStore
	var socialStore storage.SocialStore
	if *stubMode {
		mem := memory.NewStore()
		tokenStore = mem
		socialStore = mem
		log.Info().Msg("Storage: STUB mode (in-memory)")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Postgres")
		}
		defer pool.Close()

		if err := postgres.InitSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize schema")
		}
		tokenStore = postgres.NewTokenStore(pool)
		socialStore = postgres.NewSocialStore(pool)
	}

	// 6. Blacklist, seeded from config.
	bl := blacklist.NewStore()
	bl.Seed(cfg.Blacklists.Symbols, cfg.Blacklists.DevAddresses)

	// 7. Reputation gate.
	var checker rugcheck.Checker
	if *stubMode {
		stub := rugcheck.NewStubChecker()
		stub.SetFallback(&rugcheck.Verdict{Status: rugcheck.StatusGood})
		checker = stub
		log.Info().Msg("Rugcheck: STUB mode (every token Good)")
	} else {
		checker = rugcheck.NewClient(cfg.Rugcheck.URL)
	}
	gate := rugcheck.NewGate(checker, bl)

	// 8. Social enricher (optional).
	var enricher pipeline.SocialEnricher
	if cfg.TweetScout.Enabled && !*stubMode {
		enricher = tweetscout.NewEnricher(
			tweetscout.NewClient(cfg.TweetScout.URL, cfg.TweetScout.APIKey),
			socialStore,
		)
	}

	// 9. Dispatcher.
	var sender notify.Sender
	if cfg.General.DryRun || *stubMode {
		sender = notify.LogSender{}
	} else {
		sender = notify.NewTelegram(cfg.Telegram.TelegramConfig)
	}
	dispatcher := notify.NewDispatcher(sender, cfg.Telegram.CommandPrefix)

	// 10. Pipeline and feed.
	pipe := pipeline.New(gate, bl, tokenStore, enricher, dispatcher)
	feedClient := feed.NewClient(cfg.Feed.URL)

	if cfg.Feed.StreamEnabled {
		runStream(ctx, cfg, pipe)
	}
	runPollLoop(ctx, cfg, feedClient, pipe, gate)

	log.Info().Msg("pumpwatch - Shutdown complete")
}

// runStream consumes the websocket migration stream until it gives up or the
// context is cancelled. On stream exhaustion the caller falls back to polling.
func runStream(ctx context.Context, cfg *config.Config, pipe *pipeline.Pipeline) {
	sub := feed.NewSubscriber(cfg.Feed.Stream)
	tokenCh := sub.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case token, ok := <-tokenCh:
			if !ok {
				log.Warn().Msg("Feed stream closed, falling back to polling")
				return
			}
			pipe.RunCycle(ctx, []feed.Token{token})
		}
	}
}

// runPollLoop fetches and processes the feed on a fixed interval until the
// context is cancelled. The first cycle runs immediately.
func runPollLoop(ctx context.Context, cfg *config.Config, feedClient *feed.Client, pipe *pipeline.Pipeline, gate *rugcheck.Gate) {
	interval := time.Duration(cfg.Feed.PollIntervalS) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runOnce(ctx, feedClient, pipe, gate)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runOnce(ctx context.Context, feedClient *feed.Client, pipe *pipeline.Pipeline, gate *rugcheck.Gate) {
	if ctx.Err() != nil {
		return
	}

	tokens, err := feedClient.FetchMigrated(ctx)
	if err != nil {
		// Provider outage is "no data this cycle", never fatal.
		log.Warn().Err(err).Msg("Feed fetch failed, empty batch this cycle")
		return
	}
	if len(tokens) == 0 {
		log.Debug().Msg("Feed returned no migrated tokens")
		return
	}

	report := pipe.RunCycle(ctx, tokens)
	stats := gate.Stats()
	log.Debug().
		Str("cycle_id", report.CycleID).
		Int64("rugcheck_checked", stats.Checked).
		Int64("rugcheck_flagged", stats.Flagged).
		Int64("rugcheck_errors", stats.CheckErrors).
		Msg("Cycle stats")
}

func setupLogging(general config.GeneralConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
	level, err := zerolog.ParseLevel(general.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if general.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Str("service", "pumpwatch").
			Str("instance", general.InstanceID).Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).
			With().Timestamp().Str("service", "pumpwatch").
			Str("instance", general.InstanceID).Logger()
	}
}
