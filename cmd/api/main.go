package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("salon-scheduler", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config: cfg,
		Log:    log,
		Ready:  map[string]handlers.ReadyFunc{},
	}

	var sink audit.Sink

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		mem := audit.NewMemorySink()
		deps.Repo, deps.Schedule, deps.Catalog = store, store, store
		deps.AuditLog, sink = mem, mem

	default:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			log.Error("database init failed", "err", err)
			os.Exit(1)
		}
		auditLogger := audit.New(db)
		deps.Repo = infraRepo.NewAppointmentGormRepository(db)
		deps.Schedule = infraRepo.NewScheduleGormRepository(db)
		deps.Catalog = infraRepo.NewCatalogGormRepository(db)
		deps.AuditLog, sink = auditLogger, auditLogger
		deps.Ready["postgres"] = dbpkg.ReadyCheck(db)
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		deps.Redis = rdb
		deps.Ready["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	} else {
		log.Info("REDIS_URL not set; public rate limiting disabled")
	}

	dispatcher := audit.NewDispatcher(sink, log)
	defer dispatcher.Close()
	deps.Audit = dispatcher

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", "addr", cfg.Addr(), "driver", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
	log.Info("server stopped")
}

