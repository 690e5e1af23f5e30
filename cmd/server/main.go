package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"photovault/internal/auth"
	"photovault/internal/blob"
	"photovault/internal/config"
	"photovault/internal/events"
	"photovault/internal/logger"
	"photovault/internal/metrics"
	"photovault/internal/repository"
	"photovault/internal/server"
	"photovault/internal/service"
	"photovault/internal/story"
	"photovault/internal/uploader"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	if cfg.Session.Secret == "" {
		panic("SESSION_SECRET is required")
	}

	log, err := logger.New(cfg.App.Env == "development", cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	metrics.Init()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)

	userRepo, err := repository.NewMongoUserRepo(ctx, db)
	if err != nil {
		log.Fatalf("users repo: %v", err)
	}
	photoRepo, err := repository.NewMongoPhotoRepo(ctx, db)
	if err != nil {
		log.Fatalf("photos repo: %v", err)
	}

	// Blob store: memory cache, optionally backed by S3 for durability
	cache := blob.NewMemoryStore()
	var backing blob.Store
	if cfg.Blob.Bucket != "" {
		s3store, err := blob.NewS3Store(ctx, cfg.Blob.Region, cfg.Blob.Bucket, cfg.Blob.Endpoint)
		if err != nil {
			log.Fatalf("s3 init: %v", err)
		}
		backing = s3store
	} else {
		log.Warn("no blob bucket configured, images are lost on restart")
	}
	blobs := blob.NewTiered(cache, backing)

	// optional redis for distributed rate limiting
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// optional kafka lifecycle events
	var bus events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		bus = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	}

	manager := uploader.NewManager(cfg.Upload.MaxConcurrent, cfg.Upload.MaxSizeBytes, log)
	sessions := auth.NewSessions(cfg.Session.Secret, cfg.SessionTTL)
	stories := story.NewClient(story.Config{
		APIKey:  cfg.Story.APIKey,
		BaseURL: cfg.Story.BaseURL,
		Model:   cfg.Story.Model,
		Timeout: cfg.StoryTimeout,
	}, log)

	users := service.NewUserService(userRepo, log)
	photos := service.NewPhotoService(photoRepo, blobs, manager, bus, log)

	app := server.New(server.Deps{
		Cfg:      cfg,
		Log:      log,
		Users:    users,
		Photos:   photos,
		Sessions: sessions,
		Manager:  manager,
		Stories:  stories,
		Redis:    rdb,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Infof("starting photovault on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()

	_ = app.Shutdown()
	_ = bus.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = mc.Disconnect(shutdownCtx)
	log.Info("shutdown completed")
}
