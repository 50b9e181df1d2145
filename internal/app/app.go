// Package app wires configuration, storage, services, and transport
// together and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/carbonaegis/aegis-backend/internal/adapter/postgres"
	emissionrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/emission"
	facilityrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/facility"
	factorrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/factor"
	orgrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/organization"
	tokenrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/token"
	userrepo "github.com/carbonaegis/aegis-backend/internal/adapter/postgres/user"
	"github.com/carbonaegis/aegis-backend/internal/auth"
	"github.com/carbonaegis/aegis-backend/internal/config"
	authsvc "github.com/carbonaegis/aegis-backend/internal/service/auth"
	"github.com/carbonaegis/aegis-backend/internal/service/emission"
	"github.com/carbonaegis/aegis-backend/internal/service/facility"
	"github.com/carbonaegis/aegis-backend/internal/service/factor"
	"github.com/carbonaegis/aegis-backend/internal/service/organization"
	"github.com/carbonaegis/aegis-backend/internal/service/report"
	"github.com/carbonaegis/aegis-backend/internal/taxonomy"
	"github.com/carbonaegis/aegis-backend/internal/transport/middleware"
	"github.com/carbonaegis/aegis-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and handlers, and serves HTTP until the
// context is canceled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// Broken reference data means broken entry forms; refuse to start.
	if err := taxonomy.Validate(); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	organizations := orgrepo.New(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	facilities := facilityrepo.New(pool)
	factors := factorrepo.New(pool)
	emissions := emissionrepo.New(pool)

	authService := authsvc.NewService(logger, users, organizations, tokens, txManager, jwtManager, cfg.Auth)
	factorService := factor.NewService(logger, factors, cfg.Emissions.FactorYear)
	emissionService := emission.NewService(logger, emissions, factorService,
		cfg.Emissions.LegacyZeroFill, cfg.Emissions.MaxRecordsPerList)
	facilityService := facility.NewService(logger, facilities)
	organizationService := organization.NewService(logger, organizations)
	reportService := report.NewService(logger, emissions)

	handlers := rest.Handlers{
		Auth:          rest.NewAuthHandler(authService, logger),
		Emissions:     rest.NewEmissionsHandler(emissionService, logger),
		Factors:       rest.NewFactorsHandler(factorService, logger),
		Facilities:    rest.NewFacilitiesHandler(facilityService, logger),
		Organizations: rest.NewOrganizationsHandler(organizationService, logger),
		Reports:       rest.NewReportsHandler(reportService, logger),
		Admin:         rest.NewAdminHandler(factors, logger),
		Health:        rest.NewHealthHandler(pool, BuildVersion()),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer limiter.Stop()

	router := rest.NewRouter(logger, cfg, handlers, authService, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", slog.String("reason", "context canceled"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
