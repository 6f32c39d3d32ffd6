package routes

import (
	"fortstats/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.AccountHandler:
			r.registerAccountHandler(handler)
		}
	}
}

// Register the account handler.
func (r *Router) registerAccountHandler(handler *handlers.AccountHandler) {
	accounts := r.api.Group("/accounts")
	{
		accounts.GET("", handler.GetAccounts)
		accounts.GET("/:username/latest", handler.GetLatest)
		accounts.GET("/:username/history", handler.GetHistory)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
