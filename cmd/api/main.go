package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"vet-clinic-records/internal/adapters/auth/jwtauth"
	"vet-clinic-records/internal/adapters/auth/odin"
	pg "vet-clinic-records/internal/adapters/storage/postgres"
	"vet-clinic-records/internal/platform/config"
	"vet-clinic-records/internal/platform/logger"
	"vet-clinic-records/internal/ports/auth"
	"vet-clinic-records/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout + registro en memoria (conteo de info/error al apagar)
	rec := logger.NewRecorder()
	log := logger.Tee(logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	}), rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("postgres ready", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory repositories", nil)
	}

	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		log.Info("redis broadcast enabled", map[string]any{"channel": cfg.RedisChannel})
	}

	signer := jwtauth.NewSigner(cfg.JWTSecret, cfg.AppName, cfg.JWTTTL)
	var verifier auth.AuthVerifier = signer
	if cfg.OdinBaseURL != "" {
		client, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
		if err != nil {
			return fmt.Errorf("odin client: %w", err)
		}
		verifier = odin.NewVerifier(client)
		log.Info("verifying tokens with odin", map[string]any{"base_url": cfg.OdinBaseURL})
	}

	opts := router.Options{
		TokenIssuer:        signer,
		AuthVerifier:       verifier,
		DB:                 db,
		RedisChannel:       cfg.RedisChannel,
		Logger:             log,
		DebugAuth:          cfg.DebugAuth,
		Production:         cfg.IsProduction(),
		LoginRatePerMinute: cfg.LoginRatePerMinute,
	}
	if redisClient != nil {
		opts.Redis = redisClient
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped", map[string]any{
		"info_entries":  len(rec.Infos()),
		"error_entries": len(rec.Errors()),
	})
	return nil
}
