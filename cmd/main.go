package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chat-sync/audio"
	"chat-sync/domain/event"
	"chat-sync/projection"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"chat-sync/runtime/workers"
	"chat-sync/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages their lifecycle and
// centralizes error reporting, so deferred cleanups execute before the
// process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Databases (Postgres for rows, BadgerDB for voice payloads)
	db, err := sql.Open("postgres", config.PostgresDSN)
	if err != nil {
		return fmt.Errorf("postgres opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing Postgres...")
		_ = db.Close()
	}()

	blobDB, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("badger opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = blobDB.Close()
	}()

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = repositories.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}

	// 4. Engine wiring
	conversationRepo := repositories.NewConversationRepository(db, log)
	messageRepo := repositories.NewMessageRepository(db, log)
	blobRepo := repositories.NewBlobRepository(blobDB, log)

	directory := services.StaticDirectory{SelfID: config.SelfUserID}
	conversationService := services.NewConversationService(conversationRepo, log)

	broker := runtime.NewBroker(log)
	store := projection.NewTimeline(config.SelfUserID)
	subscriptions := runtime.NewSubscriptionManager(log, messageRepo, broker, store)

	recorder := audio.NewRecorder(log, &audio.NullCaptureDevice{})
	playback := audio.NewPlaybackController(log, audio.NullPlayer{})

	events := make(chan event.DomainEvent, config.BufferSize)
	engine := runtime.NewEngine(log, directory, conversationService,
		messageRepo, blobRepo, store, subscriptions, recorder, playback, events)
	_ = engine // Handed to the presentation layer, which lives elsewhere.

	// 5. Supervised workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewFanoutWorker(log, events, broker))
	sup.Add(workers.NewTelemetryWorker(log, config.MetricInterval))

	done := make(chan struct{})
	go func() {
		defer close(done)
		sup.Run(ctx)
	}()

	log.Info("Engine ready", "self", config.SelfUserID)

	// 6. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")
	sup.Stop()
	<-done

	log.Info("Program stopped cleanly")
	return nil
}
