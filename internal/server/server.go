package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yatube/yatube/internal/bootstrap"
	"github.com/yatube/yatube/internal/config"
)

// tokenCleanupInterval is how often expired refresh and password reset
// tokens are purged from the database.
const tokenCleanupInterval = 1 * time.Hour

// Server ties together the HTTP listener, the shared dependencies and
// the background token cleanup.
type Server struct {
	config      *config.Config
	router      *gin.Engine
	dbPool      *pgxpool.Pool
	deps        *bootstrap.Dependencies
	logger      zerolog.Logger
	http        *http.Server
	cleanupStop chan struct{}
	cleanupDone chan struct{}
}

// NewServer runs the bootstrap sequence and returns a server that is
// ready to listen.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	s := &Server{
		config:      cfg,
		router:      router,
		dbPool:      dbPool,
		deps:        deps,
		logger:      lgr,
		cleanupStop: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}

	return s, nil
}

// startTokenCleanup periodically removes expired refresh and password reset
// tokens so the token tables don't grow without bound.
func (s *Server) startTokenCleanup() {
	go func() {
		defer close(s.cleanupDone)
		ticker := time.NewTicker(tokenCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				removed, err := s.deps.Repos.TokenRepository.CleanupExpiredTokens(ctx)
				if err != nil {
					s.logger.Error().Err(err).Msg("Refresh token cleanup failed")
				} else if removed > 0 {
					s.logger.Info().Int64("removed", removed).Msg("Expired refresh tokens removed")
				}
				if err := s.deps.Repos.PasswordResetTokenRepository.DeleteExpiredTokens(ctx); err != nil {
					s.logger.Error().Err(err).Msg("Password reset token cleanup failed")
				}
				cancel()
			case <-s.cleanupStop:
				return
			}
		}
	}()
}

// Run starts listening and blocks until the server fails or an OS
// signal asks it to stop, then shuts everything down in order.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.startTokenCleanup()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("mode", s.config.Server.Mode).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops the cleanup ticker, drains in-flight requests and
// closes the cache store and database pool. Errors along the way are
// logged and folded into a single return value, each resource gets its
// close attempt even if an earlier one failed.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	close(s.cleanupStop)
	select {
	case <-s.cleanupDone:
	case <-ctx.Done():
		s.logger.Warn().Msg("Timed out waiting for token cleanup to stop")
	}

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// The memory cache store has no Close, the redis one does
	if closer, ok := s.deps.CacheStore.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Page cache store close error")
			shutdownError = true
		}
	}

	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
