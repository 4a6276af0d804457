package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aretw0/aeon"
	"github.com/aretw0/aeon/internal/adapters/discovery"
	httpAdapter "github.com/aretw0/aeon/internal/adapters/http"
	"github.com/aretw0/aeon/internal/adapters/memory"
	redisAdapter "github.com/aretw0/aeon/internal/adapters/redis"
	"github.com/aretw0/aeon/internal/logging"
	"github.com/aretw0/aeon/internal/observability"
	"github.com/aretw0/aeon/pkg/persistence/middleware"
	"github.com/aretw0/aeon/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	Long: `Starts the Aeon gateway: accepts prediction queries over HTTP, fetches
causal graphs from the discovery service, and serves simulated biomarker
trajectories with result caching.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		discoveryURL, _ := cmd.Flags().GetString("discovery-url")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
		particles, _ := cmd.Flags().GetInt("particles")
		workers, _ := cmd.Flags().GetInt("workers")
		level, _ := cmd.Flags().GetString("log-level")

		logger := logging.NewJSON(logging.ParseLevel(level))

		reg := prometheus.NewRegistry()
		metrics := observability.New(reg)

		source := discovery.NewClient(discoveryURL, discovery.WithLogger(logger))

		encryptionKey, _ := cmd.Flags().GetString("cache-encryption-key")
		redactPatterns, _ := cmd.Flags().GetStringSlice("cache-redact")

		var store ports.ResultStore = memory.NewStore()
		var locker ports.Locker
		if redisAddr != "" {
			client := goredis.NewClient(&goredis.Options{
				Addr:     redisAddr,
				Password: redisPassword,
				DB:       redisDB,
			})
			store = redisAdapter.NewFromClient(client, redisAdapter.WithTTL(cacheTTL))
			locker = redisAdapter.NewLocker(client, "aeon:lock:")
			logger.Info("result cache backed by redis", "addr", redisAddr, "ttl", cacheTTL)
		} else {
			logger.Info("result cache in memory; pass --redis-addr for shared caching")
		}

		if len(redactPatterns) > 0 {
			store = middleware.NewRedactionMiddleware(redactPatterns)(store)
		}
		if encryptionKey != "" {
			key, err := base64.StdEncoding.DecodeString(encryptionKey)
			if err != nil || len(key) != 32 {
				fmt.Println("Error: --cache-encryption-key must be 32 bytes, base64-encoded")
				os.Exit(1)
			}
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
			logger.Info("result cache encryption enabled")
		}

		engineOpts := []aeon.Option{
			aeon.WithGraphSource(source),
			aeon.WithResultStore(store),
			aeon.WithMetrics(metrics),
			aeon.WithLogger(logger),
			aeon.WithParticles(particles),
			aeon.WithWorkers(workers),
		}
		if locker != nil {
			engineOpts = append(engineOpts, aeon.WithLocker(locker))
		}
		engine := aeon.New(engineOpts...)

		handler, err := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(reg),
		)
		if err != nil {
			fmt.Printf("Error building HTTP handler: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting aeon gateway", "addr", srv.Addr, "discovery", discoveryURL)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("aeon gateway stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("discovery-url", "http://localhost:8000", "Base URL of the causal-discovery service")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the shared result cache (empty = in-memory)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("cache-ttl", 24*time.Hour, "TTL for cached prediction results")
	serveCmd.Flags().String("cache-encryption-key", "", "Base64 AES-256 key; encrypts cached predictions at rest")
	serveCmd.Flags().StringSlice("cache-redact", nil, "Biomarker ID patterns to drop from cached responses")
	serveCmd.Flags().Int("particles", 0, "Monte Carlo ensemble size (0 = default)")
	serveCmd.Flags().Int("workers", 0, "Simulation worker fan-out (0 = GOMAXPROCS)")
}
