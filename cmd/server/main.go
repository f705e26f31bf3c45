// @title           Blog API
// @version         1.0
// @description     Sessions and posts for a small multi-author blog.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-system/internal/api"
	"github.com/inkwell/blog-system/internal/core/ports"
	"github.com/inkwell/blog-system/internal/core/service"
	"github.com/inkwell/blog-system/internal/infrastructure/db"
	"github.com/inkwell/blog-system/internal/pkg/config"
	"github.com/inkwell/blog-system/pkg/logger"
)

const (
	jwtTTL          = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "blog",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server exited cleanly")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	stores, err := db.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	ready := map[string]ports.Pinger{"store": stores.KV}

	verifier, err := credentialVerifier(ctx, cfg, stores, log)
	if err != nil {
		return err
	}
	if p, ok := verifier.(ports.Pinger); ok {
		ready["accounts"] = p
	}

	var tokens ports.TokenIssuer = service.MockTokenIssuer{}
	if cfg.TokenMode == "jwt" {
		tokens = service.NewJWTIssuer(cfg.JWTSecret, jwtTTL)
	}

	clock := service.NewClock(nil)
	sessions := service.NewSessionManager(stores.KV, verifier, tokens, clock, logger.Component("sessions"))
	posts := service.NewPostRepository(stores.KV, stores.Idempotency, clock, logger.Component("posts"))
	blog := service.NewBlog(sessions, posts, log)

	if err := blog.Hydrate(ctx); err != nil {
		return err
	}

	e := api.NewRouter(blog, api.Options{Ready: ready}, log)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreBackend).
			Str("auth", cfg.AuthProvider).
			Str("tokens", cfg.TokenMode).
			Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// credentialVerifier returns the static demo accounts, or a MongoDB-backed
// verifier seeded with them when AUTH_PROVIDER=mongo. The Mongo connection
// is the one db.Open already opened, shared with STORE_BACKEND=mongo.
func credentialVerifier(ctx context.Context, cfg *config.Config, stores *db.Stores, log zerolog.Logger) (ports.CredentialVerifier, error) {
	if cfg.AuthProvider != "mongo" {
		return service.NewStaticVerifier(service.DefaultAccounts), nil
	}
	if stores.Mongo == nil {
		return nil, errors.New("AUTH_PROVIDER=mongo but no mongo connection was opened")
	}

	repo := stores.Mongo.Credentials()
	if err := repo.EnsureAccounts(ctx, service.DefaultAccounts); err != nil {
		return nil, err
	}

	log.Info().
		Str("db", cfg.Mongo.Database).
		Bool("shared_with_store", cfg.StoreBackend == "mongo").
		Msg("using mongo credential provider")
	return repo, nil
}
