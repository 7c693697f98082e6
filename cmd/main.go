package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"mesa-campaigns/internal/adapter/csvaudience"
	"mesa-campaigns/internal/adapter/dynamo"
	"mesa-campaigns/internal/adapter/filestore"
	genaiadapter "mesa-campaigns/internal/adapter/genai"
	"mesa-campaigns/internal/adapter/http"
	kafkaadapter "mesa-campaigns/internal/adapter/kafka"
	"mesa-campaigns/internal/adapter/memory"
	"mesa-campaigns/internal/adapter/postgres"
	redisadapter "mesa-campaigns/internal/adapter/redis"
	"mesa-campaigns/internal/adapter/sandbox"
	"mesa-campaigns/internal/adapter/ses"
	templategen "mesa-campaigns/internal/adapter/template"
	"mesa-campaigns/internal/adapter/usecase"
	"mesa-campaigns/internal/config"
	"mesa-campaigns/internal/config/configs"
	"mesa-campaigns/internal/core/port"
	"mesa-campaigns/internal/db"
)

// main is the entry point of the campaign service. It loads configuration,
// optionally runs database migrations, wires the configured adapters into
// the campaign workflow and starts the HTTP server. On receiving a
// termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := wire(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup error", slog.Any("error", err))
		return
	}
	defer app.close()

	handler := httpadapter.NewHandler(app.svc, logger, cfg.HTTP.AllowedOrigins)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	exitCode = 0
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		exitCode = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

type application struct {
	svc     port.CampaignUseCase
	closers []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// wire builds every adapter selected by cfg. Resources opened before a
// failure are released.
func wire(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	var pool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		if cfg.Psql.RunMigrations {
			res, err := db.Migrate(cfg.Psql.Addr.String())
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("campaign schema ready",
				slog.Uint64("from_version", uint64(res.From)),
				slog.Uint64("to_version", uint64(res.To)),
				slog.Bool("changed", res.Changed()))
		}
		pool, err = db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, fmt.Errorf("database connection: %w", err)
		}
		app.closers = append(app.closers, pool.Close)
	}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			c, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
			if err != nil {
				return aws.Config{}, fmt.Errorf("load aws config: %w", err)
			}
			awsCfg = &c
		}
		return *awsCfg, nil
	}

	var repo port.CampaignRepository
	switch cfg.Store.Driver {
	case configs.StorePostgres:
		repo = postgres.NewCampaignRepository(pool)
	case configs.StoreDynamoDB:
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		repo = dynamo.NewCampaignRepository(dynamo.NewClient(c, cfg.Dynamo.Endpoint), cfg.Dynamo.Table)
	default:
		repo = memory.NewCampaignRepository()
	}

	var (
		activity usecase.ActivityLogs
		metrics  port.MetricsProvider
	)
	switch cfg.Activity.Driver {
	case configs.ActivityPostgres:
		store := postgres.NewActivityRepository(pool)
		activity, metrics = append(activity, store), store
	default:
		store := memory.NewActivityStore()
		activity, metrics = append(activity, store), store
	}
	if cfg.Kafka.Brokers != "" {
		w, err := kafkaadapter.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		pub := kafkaadapter.NewActivityPublisher(w, cfg.Kafka.Timeout)
		activity = append(activity, pub)
		app.closers = append(app.closers, func() {
			if err := pub.Close(); err != nil {
				logger.Error("kafka writer close error", slog.Any("error", err))
			}
		})
	}

	var locker port.Locker = memory.NewKeyedLocker()
	if cfg.Redis.URL != "" {
		client, err := redisadapter.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = client.Close() })
		locker = redisadapter.NewLocker(client, cfg.Redis.LockTTL, cfg.Redis.LockRetry, logger)
	}

	var dispatcher port.EmailDispatcher
	switch cfg.Dispatch.Driver {
	case configs.DispatchSES:
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		dispatcher, err = ses.NewDispatcher(ses.NewClient(c), cfg.SES.From, cfg.SES.ConfigurationSet, logger)
		if err != nil {
			return nil, err
		}
	default:
		dispatcher = sandbox.NewDispatcher(logger, cfg.Dispatch.SandboxRejectDomain)
	}

	var (
		strategy port.StrategyGenerator
		content  port.ContentGenerator
	)
	if cfg.GenAI.APIKey != "" {
		client, err := genaiadapter.NewClient(ctx, cfg.GenAI.APIKey)
		if err != nil {
			return nil, err
		}
		gen := genaiadapter.NewGenerator(client.Models, cfg.GenAI.Model, logger)
		strategy, content = gen.Strategy(), gen
	} else {
		gen, err := templategen.NewGenerator()
		if err != nil {
			return nil, err
		}
		strategy, content = gen.Strategy(), gen
		logger.Info("GENAI_API_KEY not set, using template generator")
	}

	results, err := filestore.NewResultsStore(cfg.Results.Dir)
	if err != nil {
		return nil, err
	}

	seed := cfg.Workflow.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	app.svc = usecase.NewCampaignUseCase(usecase.Dependencies{
		Repo:         repo,
		Results:      results,
		Locker:       locker,
		Strategy:     strategy,
		Segmentation: csvaudience.NewProvider(cfg.Audience.Dir, cfg.Audience.Default, cfg.Audience.Limit),
		Content:      content,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Activity:     activity,
		Logger:       logger,
		Rand:         rand.New(rand.NewSource(seed)),
	}, usecase.Options{
		DefaultVariants: cfg.Workflow.Variants,
		PrimaryMetric:   cfg.Workflow.PrimaryMetric,
		DispatchWorkers: cfg.Dispatch.Workers,
		CommitAttempts:  cfg.Dispatch.CommitAttempts,
		CommitBackoff:   cfg.Dispatch.CommitBackoff,
		Reconciler: usecase.ReconcilerConfig{
			Wait:    cfg.Metrics.Wait,
			Timeout: cfg.Metrics.Timeout,
			Rates:   usecase.DefaultEstimateRates,
		},
	})

	logger.Info("campaign workflow ready",
		slog.String("store", cfg.Store.Driver),
		slog.String("activity", cfg.Activity.Driver),
		slog.String("dispatch", cfg.Dispatch.Driver),
		slog.Bool("redis_locks", cfg.Redis.URL != ""),
		slog.Bool("kafka", cfg.Kafka.Brokers != ""))
	return app, nil
}
