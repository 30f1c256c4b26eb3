package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/nurd-os/team-sorter/internal/handlers/telegram"
	adminRepo "github.com/nurd-os/team-sorter/internal/repositories/admin"
	membershipRepo "github.com/nurd-os/team-sorter/internal/repositories/membership"
	playerRepo "github.com/nurd-os/team-sorter/internal/repositories/player"
	sessionRepo "github.com/nurd-os/team-sorter/internal/repositories/session"
	venueRepo "github.com/nurd-os/team-sorter/internal/repositories/venue"
	"github.com/nurd-os/team-sorter/internal/services/dialog"
	"github.com/nurd-os/team-sorter/internal/services/roster"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize Badger for per-chat conversation state
	db, err := badger.Open(badger.DefaultOptions(getEnv("BADGER_DIR", "/tmp/team-sorter")).WithLogger(nil))
	if err != nil {
		log.Fatalf("Failed to open Badger: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	venues, err := venueRepo.NewRedis(&venueRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create venue repository: %v", err)
	}

	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create player repository: %v", err)
	}

	memberships, err := membershipRepo.NewRedis(&membershipRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create membership repository: %v", err)
	}

	admins, err := adminRepo.NewRedis(&adminRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create admin repository: %v", err)
	}

	sessions, err := sessionRepo.NewBadger(&sessionRepo.Config{
		DB: db,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	// Initialize roster service
	rosterSvc, err := roster.New(&roster.Config{
		VenueRepo:      venues,
		PlayerRepo:     players,
		MembershipRepo: memberships,
	})
	if err != nil {
		log.Fatalf("Failed to create roster service: %v", err)
	}

	// Initialize dialog service
	dialogSvc, err := dialog.New(&dialog.Config{
		AuthURL:       getEnv("AUTH_URL", ""),
		SessionRepo:   sessions,
		VenueRepo:     venues,
		AdminRepo:     admins,
		RosterService: rosterSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create dialog service: %v", err)
	}

	// Get Telegram token from environment
	token := getEnv("TELEGRAM_TOKEN", "")
	if token == "" {
		log.Fatal("TELEGRAM_TOKEN environment variable is required")
	}

	// Initialize Telegram bot
	bot, err := telegram.New(&telegram.Config{
		Token:         token,
		DialogService: dialogSvc,
		RosterService: rosterSvc,
		VenueRepo:     venues,
	})
	if err != nil {
		log.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Long polling stops when the context is canceled
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	bot.Start(ctx)

	log.Println("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
