package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrCamelHub/Trade-in/internal/business"
	"github.com/MrCamelHub/Trade-in/internal/reconcile"
	"github.com/MrCamelHub/Trade-in/internal/scheduler"
	syncHandler "github.com/MrCamelHub/Trade-in/internal/server/handlers/sync"
	"github.com/MrCamelHub/Trade-in/internal/server/routers"
	"github.com/MrCamelHub/Trade-in/internal/worker"
	"github.com/MrCamelHub/Trade-in/pkg/config"
	"github.com/MrCamelHub/Trade-in/pkg/infra/cornerlogis"
	"github.com/MrCamelHub/Trade-in/pkg/infra/mysql"
	redisinfra "github.com/MrCamelHub/Trade-in/pkg/infra/redis"
	"github.com/MrCamelHub/Trade-in/pkg/infra/sheet"
	"github.com/MrCamelHub/Trade-in/pkg/infra/shopby"
	"github.com/MrCamelHub/Trade-in/pkg/lmstfy"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
	"github.com/MrCamelHub/Trade-in/pkg/notify"
)

var (
	configPath = flag.String("config", "./config/config.yaml", "config file path")
)

func main() {
	flag.Parse()

	log.Println("========================================")
	log.Println("  Trade-in Sync Service Starting...")
	log.Println("========================================")

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}
	log.Printf("Config loaded: %s, env: %s, log_level: %s\n", cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	// 2. Init logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	// 3. Infra clients
	runDAO, err := mysql.NewSyncRunDAO(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to create sync run DAO: %v", err)
	}
	defer runDAO.Close()
	if err := runDAO.Migrate(); err != nil {
		log.Fatalf("Failed to migrate sync_runs: %v", err)
	}

	runLease, err := redisinfra.NewRunLease(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Sync.LeaseTTL)
	if err != nil {
		log.Fatalf("Failed to create run lease: %v", err)
	}
	defer runLease.Close()

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to create lmstfy client: %v", err)
	}

	cornerClient := cornerlogis.NewClient(cfg.Cornerlogis.BaseURL, cfg.Cornerlogis.APIKey)
	shopbyClient := shopby.NewClient(cfg.Shopby.BaseURL, cfg.Shopby.SystemKey, cfg.Shopby.AuthToken, cfg.Shopby.Version)

	// Carrier mapping sheet is optional; the policy default covers its absence.
	var carrierMapper reconcile.CarrierMapper
	if cfg.Carriers.MappingFile != "" {
		mapping, err := sheet.LoadCarrierMapping(cfg.Carriers.MappingFile, cfg.Carriers.DefaultCarrier)
		if err != nil {
			zapLogger.Warnf(ctx, "[Main] carrier mapping unavailable, using default %s: %v",
				cfg.Carriers.DefaultCarrier, err)
		} else {
			zapLogger.Infof(ctx, "[Main] carrier mapping loaded: %d carriers", mapping.Size())
			carrierMapper = mapping
		}
	}

	// 4. Core wiring
	policy := reconcile.DefaultPolicy()
	policy.DefaultCarrier = cfg.Carriers.DefaultCarrier

	source := reconcile.NewFulfillmentOrderSource(cornerClient, cfg.Cornerlogis.PageSize, cfg.Cornerlogis.MaxPages, zapLogger)
	lookup := reconcile.NewCommerceOrderLookup(shopbyClient, zapLogger)
	reconciler := reconcile.NewReconciler(policy)
	executor := reconcile.NewBatchExecutor(shopbyClient, policy, carrierMapper, cfg.Sync.MutationInterval, zapLogger)
	orchestrator := reconcile.NewOrchestrator(source, lookup, reconciler, executor,
		cfg.Cornerlogis.DaysBack, cfg.Sync.LookupInterval, zapLogger)

	syncService := business.NewSyncService(
		orchestrator,
		business.NewRedisLeaseGuard(runLease),
		runDAO,
		notify.NewSlackNotifier(cfg.Slack.WebhookURL),
		zapLogger,
	)

	// 5. Worker (serializes all mutating runs)
	syncWorker := worker.NewWorker(cfg.Lmstfy.Queue, lmstfyClient, syncService, zapLogger)
	go syncWorker.Start(ctx)

	// 6. Scheduler (business-window ticks)
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, cfg.Lmstfy.Queue, lmstfyClient, zapLogger)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		go sched.Start(ctx)
	} else {
		zapLogger.Warnf(ctx, "[Main] scheduler disabled, sync runs only on manual triggers")
	}

	// 7. HTTP server
	handler := syncHandler.NewHandler(syncService, lmstfyClient, cfg.Lmstfy.Queue, runDAO, zapLogger)
	router := routers.SetupRoutes(handler, zapLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Infof(ctx, "[Main] HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Println("Service started. Press Ctrl+C to shutdown.")

	// 8. Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Println("========================================")
	log.Printf("  Received signal: %v\n", sig)
	log.Println("  Shutting down...")
	log.Println("========================================")

	// 9. Graceful shutdown: stop intake first, then the in-flight run.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warnf(ctx, "[Main] HTTP shutdown error: %v", err)
	}

	if sched != nil {
		sched.Shutdown()
	}
	syncWorker.Shutdown()

	log.Println("========================================")
	log.Println("  Service exited gracefully")
	log.Println("========================================")
}
