package modules

import (
	"fortstats/api/handlers"
	accountservice "fortstats/api/services/account"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/fetcher/repositories"
	"fortstats/pkg/config"
	"fortstats/pkg/logger"
	"fortstats/pkg/redis"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module containing the necessary handlers.
type Module struct {
	Router         *gin.Engine
	AccountHandler *handlers.AccountHandler
}

// ModuleDeps holds the shared connections used by the module.
type ModuleDeps struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.RedisClient
	Logger *logger.Logger
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDeps) *Module {
	router := gin.Default()

	// The fetcher is shared between requests, diagnostics go to the shared logger.
	fetcher := accountfetcher.NewAccountFetcher(deps.Config.Api.AccountsURL, &http.Client{}, deps.Logger)

	accountService := accountservice.NewAccountService(&accountservice.AccountServiceDeps{
		Fetcher:    fetcher,
		Repository: repositories.NewAccountRepository(deps.DB),
		Cache:      repositories.NewLatestCache(deps.Redis, deps.Config.Redis.SnapshotTTL),
	})

	// Return the module with all handlers.
	return &Module{
		Router:         router,
		AccountHandler: handlers.NewAccountHandler(accountService),
	}
}
