package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-adoption-api/internal/adapters/auth/jwt"
	"pet-adoption-api/internal/adapters/auth/remote"
	rediscache "pet-adoption-api/internal/adapters/cache/redis"
	"pet-adoption-api/internal/adapters/events/rabbitmq"
	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.NewFromEnv()
	defer func() { _ = logger.Sync(log) }()

	stores, closeStores, err := router.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStores(context.Background()); err != nil {
			log.Warn("close store failed", map[string]any{"err": err})
		}
	}()

	fileStore, err := router.OpenFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	tokens, err := jwt.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}
	verifier, err := authVerifier(cfg, tokens)
	if err != nil {
		return err
	}

	events, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange, log)
	if err != nil {
		return err
	}
	defer events.Close()

	opts := router.Options{
		Logger:       log,
		Config:       cfg,
		AuthVerifier: verifier,
		TokenIssuer:  tokens,
		Stores:       &stores,
		Files:        fileStore,
		Events:       events,
	}

	if cfg.Redis.URL != "" {
		client, err := rediscache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			// sin cache se sigue sirviendo desde el store
			log.Warn("redis unavailable, animals cache disabled", map[string]any{"err": err})
		} else {
			defer client.Close()
			opts.AnimalsCache = rediscache.NewAnimalsCache(client, cfg.Redis.AnimalsTTL)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"store":   cfg.Store.Driver,
			"files":   cfg.Files.Driver,
			"events":  events.Enabled(),
			"auth":    cfg.Auth.Provider,
			"env":     cfg.Server.Environment,
			"version": version,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// authVerifier elige quién valida los Bearer tokens. El login local sigue
// firmando con jwt aunque la verificación sea remota.
func authVerifier(cfg *config.Config, tokens *jwt.Manager) (auth.AuthVerifier, error) {
	switch cfg.Auth.Provider {
	case "", "jwt":
		return tokens, nil
	case "remote":
		return remote.New(remote.Config{
			BaseURL: cfg.Auth.RemoteURL,
			APIKey:  cfg.Auth.RemoteAPIKey,
			Timeout: cfg.Auth.RemoteTimeout,
		})
	case "none":
		// modo dev: X-Debug-User-ID
		return nil, nil
	}
	return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.Auth.Provider)
}
