package routes

import (
	"net/http"

	"github.com/ArowuTest/bingo-caller/internal/config"
	"github.com/ArowuTest/bingo-caller/internal/handlers"
	"github.com/ArowuTest/bingo-caller/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the handlers wired into the router
type HandlerDependencies struct {
	GameHandler  *handlers.GameHandler
	BoardHandler *handlers.BoardHandler

	// Both nil unless auth is enabled
	AuthHandler *handlers.AuthHandler
	HostAuth    gin.HandlerFunc
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))

	router.SetHTMLTemplate(handlers.BoardTemplate())
	router.GET("/", deps.BoardHandler.Show)

	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		public.GET("/game", deps.GameHandler.GetGame)
		public.GET("/labels/:number", deps.GameHandler.GetLabel)

		if deps.AuthHandler != nil {
			public.POST("/auth/login", deps.AuthHandler.Login)
		}
	}

	// Draw and reset are host-only when the host lock is on
	host := router.Group("/api/v1/game")
	if deps.HostAuth != nil {
		host.Use(deps.HostAuth)
	}
	{
		host.POST("/draw", deps.GameHandler.Draw)
		host.POST("/reset", deps.GameHandler.Reset)
	}

	return router
}
