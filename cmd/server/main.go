package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"semaphore/my-espace/internal/clients"
	"semaphore/my-espace/internal/config"
	portalgrpc "semaphore/my-espace/internal/grpc"
	internalhttp "semaphore/my-espace/internal/http"
	"semaphore/my-espace/internal/jobs"
	"semaphore/my-espace/internal/kv"
	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/normalize"
	"semaphore/my-espace/internal/portal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Error("session store init failed", "backend", cfg.SessionBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	backend := clients.NewBackend(cfg.BackendURL, cfg.BackendTimeout)
	svc := portal.NewService(backend, store, cfg.SessionTTL, normalize.LocaleFor(cfg.Locale))
	server := internalhttp.NewServer(cfg, svc, logger)

	jobs.StartSessionPurgeJob(ctx, store, cfg.SessionPurgeInterval)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("my-espace http listening on %s", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	var grpcServer *grpc.Server
	if interceptor, err := portalgrpc.NewServiceAuthUnaryInterceptor(cfg.ServiceAuthToken); err != nil {
		logger.Warn("grpc disabled: SERVICE_AUTH_TOKEN not set")
	} else {
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		portalgrpc.RegisterPortalQueryServer(grpcServer, portalgrpc.NewPortalServer(cfg, svc))
		go func() {
			listener, err := net.Listen("tcp", cfg.GRPCAddr)
			if err != nil {
				logger.Error("grpc listen error", "error", err)
				stop()
				return
			}
			logger.Info(fmt.Sprintf("my-espace grpc listening on %s", cfg.GRPCAddr))
			if err := grpcServer.Serve(listener); err != nil {
				logger.Error("grpc server error", "error", err)
			}
		}()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}

func openSessionStore(ctx context.Context, cfg config.Config) (kv.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return kv.NewMemory(), func() {}, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return kv.NewRedis(client, "my-espace:"), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		pool, err := kv.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, err := kv.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case config.BackendSQLite:
		store, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, errors.New("unknown session backend " + cfg.SessionBackend)
	}
}
