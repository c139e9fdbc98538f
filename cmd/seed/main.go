package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"college-chatbot/internal/config"
	"college-chatbot/internal/database"
	"college-chatbot/internal/logger"
	"college-chatbot/services"
)

// Creates the default faculty and student accounts. Accounts that already exist are
// left as they are.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg)

	client, err := config.ConnectMongoDB(cfg)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	users := database.NewUserRepository(client.Database(cfg.DBName))
	authService := services.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL(), cfg.BcryptCost)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := authService.SeedDefaultUsers(ctx)
	if err != nil {
		logger.Error("seeding failed", "created", created, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d of %d default users\n", created, len(services.DefaultUsers))
	for _, u := range services.DefaultUsers {
		fmt.Printf("  %-10s %-8s division %s\n", u.Username, u.Role, u.Division)
	}
}
