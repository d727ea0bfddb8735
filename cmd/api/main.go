package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alliance-bank/config"
	httpHandler "alliance-bank/internal/adapter/http/handler"
	"alliance-bank/internal/adapter/pnw"
	memoryStorage "alliance-bank/internal/adapter/storage/memory"
	pgStorage "alliance-bank/internal/adapter/storage/postgres"
	redisStorage "alliance-bank/internal/adapter/storage/redis"
	"alliance-bank/internal/core/ports"
	"alliance-bank/internal/service"
	"alliance-bank/internal/worker"
	"alliance-bank/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("AB_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Alliance Bank")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize repositories
	memberRepo := pgStorage.NewMemberRepo(pool)
	allianceRepo := pgStorage.NewAllianceRepo(pool)
	accountRepo := pgStorage.NewAccountRepo(pool)
	entryRepo := pgStorage.NewLedgerEntryRepo(pool)
	withdrawalRepo := pgStorage.NewWithdrawalRepo(pool)
	treasuryRepo := pgStorage.NewTreasuryRepo(pool)
	cursorRepo := pgStorage.NewCursorRepo(pool)
	recordRepo := pgStorage.NewBankRecordRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Session store
	var sessionStore ports.SessionStore
	switch cfg.Session.Backend {
	case "memory":
		sessionStore = memoryStorage.NewSessionStore()
	default:
		sessionStore = redisStorage.NewSessionStore(rdb)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registry)

	// Outbound notifications
	var notifier ports.Notifier
	var webhook *service.WebhookNotifier
	if cfg.Notify.WebhookURL != "" {
		webhook = service.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Secret, nil, cfg.Notify.RetryIntervals, log)
		notifier = webhook
		log.Info().Msg("Withdrawal notifications enabled")
	}

	// Initialize core services
	box, err := service.NewSecretBoxService(cfg.Secretbox.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize secretbox")
	}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	gameAPI := pnw.NewClient(cfg.PNW, nil, log)

	// Initialize business services
	allianceSvc := service.NewAllianceService(allianceRepo, box, cfg.PNW.BotKey, log)
	memberSvc := service.NewMemberService(memberRepo, allianceRepo, log)
	ledgerSvc := service.NewLedgerService(memberRepo, accountRepo, entryRepo, transactor, log)

	paymentTimeout := cfg.Withdrawal.PaymentTimeout
	if paymentTimeout <= 0 {
		paymentTimeout = cfg.PNW.Timeout
	}
	withdrawalSvc := service.NewWithdrawalService(
		memberRepo,
		accountRepo,
		withdrawalRepo,
		ledgerSvc,
		allianceSvc,
		gameAPI,
		transactor,
		metrics,
		notifier,
		service.WithdrawalOptions{
			PaymentTimeout:     paymentTimeout,
			ReserveOutstanding: cfg.Withdrawal.ReserveOutstanding,
		},
		log,
	)
	taxSvc := service.NewTaxService(
		allianceSvc,
		gameAPI,
		cursorRepo,
		treasuryRepo,
		transactor,
		metrics,
		service.IngestOptions{PageSize: cfg.Ingestion.PageSize, PageLimit: cfg.Ingestion.TaxPageLimit},
		cfg.PNW.Timeout,
		log,
	)
	bankSvc := service.NewBankCacheService(allianceSvc, gameAPI, recordRepo, cursorRepo, transactor, metrics, cfg.PNW.Timeout, log)
	sessionSvc := service.NewSessionService(sessionStore, withdrawalSvc, memberRepo, cfg.Session.TTL, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TokenSvc:      tokenSvc,
		LedgerSvc:     ledgerSvc,
		WithdrawalSvc: withdrawalSvc,
		TaxSvc:        taxSvc,
		BankSvc:       bankSvc,
		MemberSvc:     memberSvc,
		AllianceSvc:   allianceSvc,
		SessionSvc:    sessionSvc,
		IngestDefaults: httpHandler.IngestDefaults{
			MaxPages: cfg.Ingestion.MaxPages,
			PageSize: cfg.Ingestion.PageSize,
		},
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		Gatherer:       registry,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Ingestion.Enabled {
		scheduler := worker.NewScheduler(allianceSvc, bankSvc, taxSvc, redisStorage.NewRunLock(rdb), &worker.Options{
			Interval: cfg.Ingestion.Interval,
			MaxPages: cfg.Ingestion.MaxPages,
			PageSize: cfg.Ingestion.PageSize,
			LockTTL:  cfg.Ingestion.LockTTL,
		}, log)
		g.Go(func() error { return scheduler.Run(gctx) })
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		if webhook != nil {
			if err := webhook.Wait(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Pending notifications dropped")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return
	}
	log.Info().Msg("Server exited")
}
