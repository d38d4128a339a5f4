package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/belalnote2/InsightAssistant/internal/application"
	appanalyses "github.com/belalnote2/InsightAssistant/internal/application/analyses"
	"github.com/belalnote2/InsightAssistant/internal/config"
	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
	domanalysis "github.com/belalnote2/InsightAssistant/internal/domain/analysis"
	domfailures "github.com/belalnote2/InsightAssistant/internal/domain/failures"
	ollamaai "github.com/belalnote2/InsightAssistant/internal/infra/ai/ollama"
	openaiai "github.com/belalnote2/InsightAssistant/internal/infra/ai/openai"
	mysqldb "github.com/belalnote2/InsightAssistant/internal/infra/db/mysql"
	postgresdb "github.com/belalnote2/InsightAssistant/internal/infra/db/postgres"
	sqlitedb "github.com/belalnote2/InsightAssistant/internal/infra/db/sqlite"
	"github.com/belalnote2/InsightAssistant/internal/infra/httpserver"
	minioStore "github.com/belalnote2/InsightAssistant/internal/infra/storage"
	"github.com/belalnote2/InsightAssistant/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database per configured driver
	var (
		db          *sql.DB
		repo        domanalysis.Repository
		failureRepo domfailures.Repository
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = sqlitedb.Connect(ctx, cfg.Database.Path)
		if err != nil {
			log.Fatalf("sqlite connect error: %v", err)
		}
		repo = sqlitedb.NewAnalysisRepository(db)
		failureRepo = sqlitedb.NewFailureRepository(db)
	case "mysql":
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqldb.NewAnalysisRepository(db)
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresdb.NewAnalysisRepository(db)
	default:
		log.Fatalf("unknown database driver: %q", cfg.Database.Driver)
	}
	defer db.Close()

	// diagnostic hook: log + counter + audit row, never touches the result
	report := func(err error) {
		log.Printf("analysis degraded: %v", err)
		middleware.IncrementFallbacks()
		if failureRepo == nil {
			return
		}
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := failureRepo.Save(saveCtx, &domfailures.Failure{
			Cause:  domfailures.Classify(err),
			Detail: err.Error(),
		}); saveErr != nil {
			log.Printf("failure audit save error: %v", saveErr)
		}
	}

	// init analyzer per configured provider
	var analyzer ai.Analyzer
	switch cfg.AI.Provider {
	case "ollama":
		cli := ollamaai.NewClient(cfg.AI.BaseURL, cfg.AI.Model, cfg.AITimeout())
		cli.Report = report
		analyzer = cli
	case "openai":
		cli := openaiai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
		cli.Report = report
		analyzer = cli
	default:
		log.Fatalf("unknown ai provider: %q", cfg.AI.Provider)
	}

	// init snapshot store (optional)
	var snapshots appanalyses.SnapshotStore
	if cfg.Storage.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
			cfg.Storage.BucketName,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		snapshots = store
	}

	// init service
	svc := &appanalyses.Service{
		Repo:      repo,
		Analyzer:  analyzer,
		Snapshots: snapshots,
		Clock:     application.SystemClock{},
	}

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}
	if cfg.AI.Provider == "ollama" {
		checkers["backend"] = &middleware.BackendHealthChecker{BaseURL: cfg.AI.BaseURL}
	}

	// init router + middleware chain
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.Server.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.PerSecond))
	}
	mux.Use(middleware.BearerAuth(cfg.Server.AuthToken))
	mux.Mount("/", httpserver.NewRouter(svc, failureRepo, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout() + 15*time.Second, // analyze blocks on the backend
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
