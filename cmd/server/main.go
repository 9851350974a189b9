package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"consentry/internal/activity"
	"consentry/internal/catalog"
	consentmetrics "consentry/internal/consent/metrics"
	"consentry/internal/consent/service"
	"consentry/internal/consent/store"
	"consentry/internal/platform/config"
	"consentry/internal/platform/httpserver"
	"consentry/internal/platform/logger"
	"consentry/internal/platform/tracer"
	"consentry/internal/reporting"
	"consentry/internal/seeder"
	httptransport "consentry/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing consentry",
		"addr", cfg.Addr,
		"consent_ttl", cfg.ConsentTTL,
		"expiry_window_days", cfg.ExpiryWindowDays,
	)

	providers := catalog.NewProviderDirectory(catalog.DefaultProviders())
	accounts := catalog.NewAccountDirectory(catalog.DefaultAccounts())

	consentStore := store.NewInMemoryStore()
	activityStore := activity.NewInMemoryStore()
	// The recorder runs synchronously: every lifecycle mutation has its audit
	// entry persisted before the operation returns, so a read issued right
	// after a mutation always sees the full trail.
	recorder := activity.NewRecorder(activityStore)

	if cfg.SeedDemoData {
		if err := seeder.New(consentStore, activityStore, log).SeedAll(context.Background(), time.Now()); err != nil {
			log.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	engine := service.NewService(consentStore, providers, accounts, recorder, log,
		service.WithConsentTTL(cfg.ConsentTTL),
		service.WithMetrics(consentmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
	)
	reports := reporting.NewService(consentStore, activityStore, providers, log)

	handler := httptransport.NewHandler(engine, reports, providers, accounts, cfg.ExpiryWindowDays, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
