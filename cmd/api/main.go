package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-platform/internal/activity"
	"crm-platform/internal/auth"
	"crm-platform/internal/config"
	"crm-platform/internal/employees"
	"crm-platform/internal/events"
	"crm-platform/internal/httpapi"
	"crm-platform/internal/leads"
	"crm-platform/internal/metrics"
	"crm-platform/internal/reporting"
	"crm-platform/internal/workflow"
	"crm-platform/pkg/logger"
	"crm-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "crm"),
	)
	assignMetrics := metrics.NewAssignment(reg)

	activitySvc := activity.NewService(activity.NewPostgresRepo(db), log)
	activitySvc.OnFailure = assignMetrics.ActivityFailed
	if cfg.AMQP.URL != "" {
		pub, err := events.DialWithRetry(rootCtx, cfg.AMQP.URL, cfg.AMQP.Exchange, log, 5)
		if err != nil {
			// Events are a side channel; the API runs without them.
			log.Warn("amqp unavailable, activity fan-out disabled", "err", err)
		} else {
			defer pub.Close()
			activitySvc.Publisher = pub
		}
	}

	leadRepo := leads.NewPostgresRepo(db)
	employeeRepo := employees.NewPostgresRepo(db)
	accounts := employees.NewService(employeeRepo)
	leadSvc := leads.NewService(leadRepo, activitySvc, log)
	leadSvc.Location = cfg.Location()

	h := httpapi.Handlers{
		Auth:     authManager,
		Accounts: accounts,
		Leads:    leadSvc,
		Workflow: &workflow.Service{
			Leads:     leadRepo,
			Employees: employeeRepo,
			Accounts:  accounts,
			Activity:  activitySvc,
			Tx:        utils.NewTxRunner(db),
			Locker:    utils.NewRedisLocker(rdb, "crm:lock:", cfg.Assignment.LockTTL),
			Metrics:   assignMetrics,
			Log:       log,
		},
		Reporting: reporting.NewService(reporting.StoreRepo{
			Leads:     leadRepo,
			Employees: employeeRepo,
			Activity:  activitySvc,
		}, cfg.Location()),
		Activity:       activitySvc,
		UploadMaxBytes: cfg.App.UploadMaxBytes,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	if mw := corsFor(cfg.App.CORSAllowedOrigins); mw != nil {
		r.Use(mw)
	}

	registerRoutes(r, h, auth.RequireAccessToken(authManager), reg, func(ctx context.Context) error {
		if err := utils.HealthCheck(ctx, db, 2*time.Second); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
