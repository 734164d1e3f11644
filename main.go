// main.go
package main

import (
	"context"
	"log"
	"os"

	"bilemo-api/cmd"
	"bilemo-api/internal/data/repository"
	"bilemo-api/internal/wire"
	"bilemo-api/pkg/cache"
	"bilemo-api/pkg/database"
	"bilemo-api/pkg/utils"

	"go.uber.org/zap"
)

// Usage: bilemo-api [serve | create-admin <email> <password> | seed]
func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("command", command),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	tagCache, err := cache.New(config, logger)
	if err != nil {
		logger.Fatal("Failed to init cache", zap.Error(err), zap.String("driver", config.Cache.Driver))
	}

	app := wire.Wiring(repos, tagCache, config, logger)
	defer app.Close()

	switch command {
	case "serve":
		err = cmd.APIServer(app.Router, config.App.Port, logger)
	case "create-admin":
		err = cmd.CreateAdmin(ctx, app.Service.Auth, os.Args[2:], logger)
		if err == nil {
			cmd.WarnLocalCache(tagCache, command, logger)
		}
	case "seed":
		err = cmd.Seed(ctx, repos, tagCache, logger)
	default:
		logger.Fatal("Unknown command", zap.String("command", command))
	}

	if err != nil {
		logger.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}
