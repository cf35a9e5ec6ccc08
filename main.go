/* main.go
 * The "main" method for running the scoring hosts (HTTP API and Discord bot)
 * Usage: go run . -mode=http,bot -env=.env
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"livescore/api/api"
	"livescore/api/publisher"
	"livescore/api/rules"
	"livescore/api/store"
	"livescore/bot"
	"livescore/config"
	"livescore/logging"
	"livescore/metrics"
	"livescore/web"

	"github.com/redis/go-redis/v9"
)

func main() {
	modePtr := flag.String("mode", "http,bot", "Comma separated hosts to run: http, bot")
	envPtr := flag.String("env", ".env", "Optional dotenv file to load before reading the environment")
	flag.Parse()

	cfg, err := config.Load(*envPtr)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	modes, err := parseModes(*modePtr)
	if err != nil {
		log.Fatalf("invalid -mode flag: %v", err)
	}

	logger := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "livescore"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, modes, logger); err != nil {
		logging.Error(logger, "livescore stopped", err)
		os.Exit(1)
	}
}

// run wires the store, scoring API and the selected hosts, and blocks until ctx is done or a host fails
func run(ctx context.Context, cfg config.Config, modes map[string]bool, logger *slog.Logger) error {
	kv, err := openKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	logging.Info(logger, "store opened", logging.FieldBackend, cfg.StoreBackend)

	recorder := metrics.NewRecorder()
	opts := []api.Option{api.WithLogger(logger), api.WithMetrics(recorder)}
	if cfg.PublishUpdates {
		client, owned, err := publisherClient(cfg, kv)
		if err != nil {
			kv.Close()
			return err
		}
		if owned {
			defer client.Close()
		}
		opts = append(opts, api.WithPublisher(publisher.NewStreamPublisher(client)))
	}

	scorer := api.NewAPI(store.NewStore(kv), rules.NewRegistry(), opts...)
	defer scorer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(modes))
	var wg sync.WaitGroup

	if modes[modeHTTP] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- web.Start(ctx, web.Config{
				Addr:        cfg.HTTPAddr,
				API:         scorer,
				Logger:      logger,
				Metrics:     recorder,
				CORSOrigins: cfg.CORSOrigins,
			})
		}()
	}

	if modes[modeBot] {
		b, err := bot.NewBot(cfg.DiscordToken, scorer,
			bot.WithLogger(logger),
			bot.WithMetrics(recorder),
			bot.WithRateLimit(cfg.CommandInterval, cfg.CommandBurst),
		)
		if err != nil {
			cancel()
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- b.Run(ctx)
		}()
	}

	go func() {
		wg.Wait()
		close(errCh)
	}()

	var firstErr error
	for err := range errCh {
		if err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}

// openKV connects the backend selected by STORE_BACKEND
func openKV(ctx context.Context, cfg config.Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return store.NewRedisKV(ctx, cfg.RedisURL, cfg.RedisTTL)
	case config.BackendMongo:
		return store.NewMongoKV(ctx, cfg.MongoDatabase, cfg.MongoURI)
	case config.BackendPostgres:
		return store.NewPostgresKV(ctx, cfg.PostgresDSN)
	case config.BackendSQLite:
		return store.NewSQLiteKV(ctx, cfg.SQLitePath)
	case config.BackendMemory, "":
		return store.NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// publisherClient reuses the store's Redis connection when there is one.
// owned reports a new client that the caller has to close.
func publisherClient(cfg config.Config, kv store.KV) (client *redis.Client, owned bool, err error) {
	if r, ok := kv.(*store.RedisKV); ok {
		return r.Client(), false, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, false, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), true, nil
}
