package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/docuflow/docuflow/internal/app"
	"github.com/docuflow/docuflow/internal/audit"
	"github.com/docuflow/docuflow/internal/auth"
	"github.com/docuflow/docuflow/internal/masterdata/products"
	"github.com/docuflow/docuflow/internal/observability"
	"github.com/docuflow/docuflow/internal/platform/cache"
	"github.com/docuflow/docuflow/internal/platform/db"
	"github.com/docuflow/docuflow/internal/rbac"
	"github.com/docuflow/docuflow/internal/roles"
	"github.com/docuflow/docuflow/internal/sales/customers"
	"github.com/docuflow/docuflow/internal/sales/deliveries"
	"github.com/docuflow/docuflow/internal/sales/invoices"
	"github.com/docuflow/docuflow/internal/sales/quotations"
	"github.com/docuflow/docuflow/internal/users"
	"github.com/docuflow/docuflow/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	rbacService := rbac.NewService(pool)

	tokenCodec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewHasher()
	authRepo := auth.NewRepository(pool)
	authResolver := auth.NewResolver(tokenCodec, authRepo, cfg.AuthCookieName, metrics)
	authService := auth.NewService(authRepo, hasher, tokenCodec, rbacService)

	guard := rbac.Middleware{Resolver: authResolver, Logger: logger, Metrics: metrics}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	recorder := jobs.NewRecorder(asynqClient, logger)

	authHandler := auth.NewHandler(logger, authService, authResolver, recorder, metrics, guard, cfg.IsProduction())

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, hasher, rbacService)
	usersHandler := users.NewHandler(logger, usersService, guard)

	rolesRepo := roles.NewRepository(pool)
	rolesService := roles.NewService(rolesRepo, rbacService)
	rolesHandler := roles.NewHandler(logger, rolesService, guard)

	permissionsHandler := rbac.NewPermissionsHandler(logger, rbacService, guard)

	customersHandler := customers.NewHandler(logger, customers.NewService(customers.NewRepository(pool)), guard)
	productsHandler := products.NewHandler(logger, products.NewService(products.NewRepository(pool)), guard)
	quotationsHandler := quotations.NewHandler(logger, quotations.NewService(quotations.NewRepository(pool)), guard)
	invoicesHandler := invoices.NewHandler(logger, invoices.NewService(invoices.NewRepository(pool)), guard)
	deliveriesHandler := deliveries.NewHandler(logger, deliveries.NewService(deliveries.NewRepository(pool)), guard)

	auditRepo := audit.NewRepository(pool)
	auditHandler := audit.NewHandler(logger, auditRepo, guard)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger, guard)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		UsersHandler:       usersHandler,
		RolesHandler:       rolesHandler,
		PermissionsHandler: permissionsHandler,
		CustomersHandler:   customersHandler,
		ProductsHandler:    productsHandler,
		QuotationsHandler:  quotationsHandler,
		InvoicesHandler:    invoicesHandler,
		DeliveriesHandler:  deliveriesHandler,
		AuditHandler:       auditHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
