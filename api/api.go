package main

import (
	"fortstats/api/modules"
	"fortstats/api/routes"
	"fortstats/pkg/config"
	"fortstats/pkg/database"
	"fortstats/pkg/logger"
	"fortstats/pkg/redis"
	"log"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDeps{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Logger: logger.New(os.Stdout),
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.AccountHandler,
	)

	// Start the server.
	if err := router.Run(cfg.Api.ListenAddr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
