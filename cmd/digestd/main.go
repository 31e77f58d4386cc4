package main

import (
	"context"
	"digest-lab/digest"
	"digest-lab/domain"
	"digest-lab/domain/event"
	"digest-lab/email"
	httpserver "digest-lab/infrastructure/http"
	"digest-lab/internal"
	"digest-lab/moderation"
	"digest-lab/observability"
	"digest-lab/repositories"
	"digest-lab/runtime/workers"
	"digest-lab/services"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Digestd terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		debugPort := 8081
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", debugPort, endpoint))
		database.StartDebugServer(db, debugPort, endpoint, DigestMapper)
	}

	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Repositories
	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db, logger)
	streamRepository := repositories.NewStreamRepository(db)
	subscriptionRepository := repositories.NewSubscriptionRepository(db)
	activityRepository := repositories.NewActivityRepository(db)
	queueRepository := repositories.NewDigestQueueRepository(db, logger)
	archiveRepository := repositories.NewDigestArchiveRepository(
		db, blugeWriter, logger, config.ArchivePageSize, config.ArchiveFlushEvery)

	// 4. Rendering, moderation & delivery
	renderer, err := digest.NewRenderer()
	if err != nil {
		return exitRuntime, fmt.Errorf("template parsing failed: %w", err)
	}

	redactor, err := buildRedactor(config, logger)
	if err != nil {
		return exitConfig, err
	}

	sender, err := buildSender(config, logger)
	if err != nil {
		return exitConfig, err
	}

	// 5. Services
	digestService := services.NewDigestService(
		logger,
		userRepository, messageRepository, streamRepository,
		subscriptionRepository, activityRepository, archiveRepository,
		renderer, redactor, sender,
		config.UnsubscribeBaseURL, config.DigestWindow, config.InactivityThreshold,
	)
	authService := services.NewAuthService(userRepository, config.AuthTokenDuration)

	// 6. Supervision & Workers
	monitoring := observability.NewMonitoringManager(logger)
	eventChan := make(chan domain.DigestEvent, config.BufferSize)
	telemetryChan := make(chan event.Event, config.BufferSize)

	scheduler, err := workers.NewSchedulerWorker(
		logger, config.DigestCron, digestService, queueRepository,
		eventChan, telemetryChan, monitoring,
	)
	if err != nil {
		return exitConfig, err
	}

	handlers := []event.Handler{
		event.NewChannelCapacityHandler(logger, config.LowCapacityThreshold),
		event.NewOutcomeHandler(logger),
	}

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		scheduler,
		workers.NewTelemetryWorker(logger, config.MetricInterval, telemetryChan, handlers),
		workers.NewHealthWorker(logger, monitoring, config.MetricInterval),
		workers.NewReporterWorker(monitoring, config.MetricInterval),
	)
	for i := 0; i < config.NumberOfWorkers; i++ {
		sup.Add(workers.NewDigestWorker(
			i, logger, digestService, queueRepository,
			eventChan, telemetryChan, monitoring,
		))
	}

	// 7. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	supDone := make(chan struct{})
	go func() {
		logger.Info("Starting digest pipeline", "workers", config.NumberOfWorkers, "cron", config.DigestCron)
		sup.Run(ctx)
		close(supDone)
	}()

	// 8. HTTP Server
	server := httpserver.NewServer(
		logger, config.Host, config.Port,
		authService, digestService, archiveRepository, queueRepository, monitoring,
		config.DigestWindow,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(ctx); err != nil {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 10. Final Cleanup (Graceful Shutdown)
	// Workers drain their channels, then the archive batch is committed.
	logger.Info("Shutting down gracefully...")
	sup.Stop()
	<-supDone
	if err := archiveRepository.Flush(); err != nil {
		logger.Error("Final archive flush failed", "err", err)
	}
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

// buildRedactor is optional: without a word list, previews go out unredacted.
func buildRedactor(config internal.Config, logger *slog.Logger) (*moderation.Redactor, error) {
	if config.CensoredWordsPath == "" {
		logger.Info("No censored words file configured, previews will not be redacted")
		return nil, nil
	}
	words, err := moderation.LoadWords(config.CensoredWordsPath)
	if err != nil {
		return nil, fmt.Errorf("loading censored words failed: %w", err)
	}
	return moderation.NewRedactor(words, '*')
}

func buildSender(config internal.Config, logger *slog.Logger) (email.Sender, error) {
	from := fmt.Sprintf("%s <%s>", config.FromName, config.FromAddress)
	switch config.EmailSender {
	case "smtp":
		addr := fmt.Sprintf("%s:%d", config.SMTPHost, config.SMTPPort)
		return email.NewSMTPSender(addr, from, config.SMTPUsername, config.SMTPPassword, logger), nil
	case "log":
		return email.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown EMAIL_SENDER %q (expected smtp or log)", config.EmailSender)
	}
}

// DigestMapper renders digest queue entries in the debug inspector. Other key
// families fall through to the default mapper.
func DigestMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	if !strings.HasPrefix(key, "digest:") {
		return row
	}

	// Queue records store the cutoff as UnixNano.
	var evt struct {
		UserID string `json:"user_id"`
		Cutoff int64  `json:"cutoff"`
	}
	if err := json.Unmarshal(val, &evt); err != nil || evt.UserID == "" {
		return row
	}

	row.Type = "DIGEST"
	row.EntityID = evt.UserID
	row.Detail = fmt.Sprintf("cutoff=%s", time.Unix(0, evt.Cutoff).UTC().Format("2006-01-02 15:04:05"))
	return row
}
