package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/fachig/blog-api/internal/auth"
	"github.com/fachig/blog-api/internal/blog"
	"github.com/fachig/blog-api/internal/config"
	"github.com/fachig/blog-api/internal/events"
	"github.com/fachig/blog-api/internal/handlers"
	"github.com/fachig/blog-api/internal/middleware"
	"github.com/fachig/blog-api/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// The pool is opened eagerly but the first connection is only attempted
	// by the availability probe on the first data request.
	var db *sql.DB
	if cfg.DatabaseURL != "" && !strings.Contains(cfg.DatabaseURL, "placeholder") {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("open database failed", "error", err)
			os.Exit(1)
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(10 * time.Second)
		defer db.Close()
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", "error", err)
		} else {
			publisher = p
			defer p.Close()
		}
	}

	var imageStore storage.Storage
	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("load aws config failed", "error", err)
			os.Exit(1)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = &cfg.S3Endpoint
				o.UsePathStyle = true
			}
		})
		imageStore = storage.NewS3Storage(client, cfg.S3Bucket, cfg.AWSRegion, cfg.CDNBaseURL)
	}

	repo := blog.NewPostgresRepository(db)
	svc := blog.NewService(repo, publisher, logger)
	gate := auth.NewGate(cfg.AdminPassword)

	availability := middleware.NewAvailability(cfg.DatabaseURL, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		return blog.EnsureSchema(ctx, db)
	}, logger)

	posts := handlers.NewPostsHandler(svc, logger)
	upload := handlers.NewUploadHandler(imageStore, logger)
	admin := middleware.AdminSecret(cfg.AdminPassword)
	data := availability.Handler

	mux := http.NewServeMux()
	mux.Handle("GET /health", handlers.Health(&handlers.HealthDeps{
		DB:          db,
		DSN:         cfg.DatabaseURL,
		RabbitMQURL: cfg.RabbitMQURL,
	}))
	mux.Handle("POST /auth/admin", handlers.AdminLogin(gate, logger))
	mux.Handle("GET /posts", data(posts.List()))
	mux.Handle("GET /posts/{id}", data(posts.Get()))
	mux.Handle("POST /posts", data(admin(posts.Create())))
	mux.Handle("PUT /posts/{id}", data(admin(posts.Update())))
	mux.Handle("DELETE /posts/{id}", data(admin(posts.Delete())))
	mux.Handle("POST /upload", data(admin(upload.Upload())))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Admin-Key", "X-Request-ID"},
	})
	handler := middleware.RequestID(middleware.Logging(logger)(corsHandler.Handler(mux)))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
