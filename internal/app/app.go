// Package app assembles the application: configuration, logging, database,
// services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/storeadm/backend/internal/adapter/postgres"
	auditrepo "github.com/storeadm/backend/internal/adapter/postgres/audit"
	categoryrepo "github.com/storeadm/backend/internal/adapter/postgres/category"
	productrepo "github.com/storeadm/backend/internal/adapter/postgres/product"
	tenantrepo "github.com/storeadm/backend/internal/adapter/postgres/tenant"
	userrepo "github.com/storeadm/backend/internal/adapter/postgres/user"
	viprepo "github.com/storeadm/backend/internal/adapter/postgres/vip"
	"github.com/storeadm/backend/internal/auth"
	"github.com/storeadm/backend/internal/config"
	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/internal/filestore"
	"github.com/storeadm/backend/internal/observability/metrics"
	auditsvc "github.com/storeadm/backend/internal/service/audit"
	authsvc "github.com/storeadm/backend/internal/service/auth"
	categorysvc "github.com/storeadm/backend/internal/service/category"
	productsvc "github.com/storeadm/backend/internal/service/product"
	vipsvc "github.com/storeadm/backend/internal/service/vip"
	"github.com/storeadm/backend/internal/transport/middleware"
	"github.com/storeadm/backend/internal/transport/rest"
)

// instrumentedAudit decorates the audit repository with a counter per
// written record. It keeps the repository's transactional behavior intact:
// the counter only moves after Append succeeds.
type instrumentedAudit struct {
	*auditrepo.Repository
	metrics *metrics.Metrics
}

func (a *instrumentedAudit) Append(ctx context.Context, rec *domain.AuditRecord) error {
	if err := a.Repository.Append(ctx, rec); err != nil {
		return err
	}
	a.metrics.ObserveAudit(rec.EntityType.String(), rec.Action.String())
	return nil
}

// Run builds the application from configuration and serves HTTP until ctx
// is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := NewLogger(cfg.Log)
	log.Info("starting", slog.String("version", BuildVersion()))

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := filestore.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	tx := postgres.NewTxManager(pool)
	m := metrics.New()

	auditRepo := auditrepo.NewRepository(pool)
	recorder := &instrumentedAudit{Repository: auditRepo, metrics: m}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	categories := categorysvc.NewService(categoryrepo.NewRepository(pool), recorder, tx, store, log, cfg.Limits.MaxPageSize)
	products := productsvc.NewService(productrepo.NewRepository(pool), recorder, tx, store, log, cfg.Limits.MaxPageSize)
	vips := vipsvc.NewService(viprepo.NewRepository(pool), recorder, tx, store, log, cfg.Limits.MaxPageSize)
	authService := authsvc.NewService(userrepo.NewRepository(pool), jwtManager, log)
	audits := auditsvc.NewService(auditRepo)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, log),
		Category: rest.NewCategoryHandler(categories, log),
		Product:  rest.NewProductHandler(products, log),
		Vip:      rest.NewVipHandler(vips, log),
		Audit:    rest.NewAuditHandler(audits, log),
		Health:   rest.Health(pool, Version),
		Metrics:  m.Handler(),
	}, rest.MiddlewareSet{
		RequestID: middleware.RequestID,
		Logger:    middleware.Logger(log),
		Recovery:  middleware.Recovery(log),
		CORS:      middleware.CORS(cfg.CORS),
		RateLimit: limiter.Limit(cfg.Limits.RequestsPerMinute),
		Metrics:   m.Middleware,
		Language:  middleware.Language,
		Auth:      middleware.Auth(jwtManager),
		Tenant:    middleware.Tenant(tenantrepo.NewRepository(pool)),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("http server listening", slog.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
