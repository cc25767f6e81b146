package main

import (
	"flag"
	"log"
	"os"

	"pixelforge/internal/config"
	"pixelforge/internal/models"
	"pixelforge/internal/repository"
	"pixelforge/internal/router"
	"pixelforge/internal/service"
	"pixelforge/internal/session"
	"pixelforge/internal/storage"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to the configuration file")
	flag.Parse()

	// Optional .env file; real environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	if err := models.InitDB(cfg.Database.Path); err != nil {
		log.Fatalf("init database: %v", err)
	}
	db := models.GetDB()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddress(),
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	sessions := session.NewStore(redisClient, cfg.Session.GetTTL())

	files, err := storage.NewStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("init upload store: %v", err)
	}

	// Make sure an admin exists so user management is reachable.
	authService := service.NewAuthService(repository.NewUserRepository(db), cfg)
	if err := authService.SeedAdmin(); err != nil {
		logger.WithError(err).Warn("failed to seed admin account")
	}

	r := router.SetupRouter(cfg, logger, db, sessions, files)

	addr := cfg.Server.GetAddress()
	logger.WithField("addr", addr).Info("server starting")

	if err := r.Run(addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
