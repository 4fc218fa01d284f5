package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/credguard/internal/core/port"
	"github.com/arklim/credguard/internal/infra/config"
	"github.com/arklim/credguard/internal/infra/logger"
	"github.com/arklim/credguard/internal/infra/security"
	"github.com/arklim/credguard/internal/transport/http/middleware"
	"github.com/arklim/credguard/internal/transport/http/routes"
	"github.com/arklim/credguard/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func New(_ context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	hasher, err := NewHasher(cfg.Hasher)
	if err != nil {
		return nil, fmt.Errorf("init hasher: %w", err)
	}

	verifierMetrics, err := usecase.NewVerifierMetrics(usecase.VerifierMetricsOptions{})
	if err != nil {
		return nil, fmt.Errorf("init verifier metrics: %w", err)
	}

	verifier, err := usecase.NewVerifierService(hasher, cfg.PasswordPolicy())
	if err != nil {
		return nil, fmt.Errorf("init verifier service: %w", err)
	}
	verifier = verifier.WithLogger(log).WithMetrics(verifierMetrics)

	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Verifier: verifier,
		Metrics:  httpMetrics,
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
	}, nil
}

// NewHasher builds the configured key derivation backend.
func NewHasher(settings config.HasherSettings) (port.PasswordHasher, error) {
	switch settings.Algorithm {
	case config.AlgorithmBcrypt:
		return security.NewBcryptHasher(port.Cost(settings.BcryptCost))
	case config.AlgorithmPBKDF2:
		return security.NewPBKDF2Hasher(port.Cost(settings.PBKDF2Iterations))
	default:
		return nil, fmt.Errorf("unsupported hasher algorithm %q", settings.Algorithm)
	}
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Verification blocks for the duration of a hash computation, so the
		// write timeout leaves generous headroom above the configured cost.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("starting credguard API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
		zap.String("algorithm", a.cfg.Hasher.Algorithm),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
