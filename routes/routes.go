package routes

import (
	"Setnet/controllers"
	"Setnet/middleware"
	"Setnet/services/app"
	"Setnet/services/sse"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, a *app.App, streams *sse.Manager) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	api.GET("/ping", controllers.Ping)
	api.POST("/auth/login", controllers.Login(a))

	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired)
	{
		authenticated.POST("/auth/logout", controllers.Logout(a))

		authenticated.GET("/lobby", controllers.GetLobby(a))
		authenticated.GET("/lobby/stream", controllers.LobbyStream(a, streams))

		authenticated.POST("/games", controllers.CreateGame(a))
		authenticated.GET("/games/:id", controllers.GetGame(a))
		authenticated.GET("/games/:id/stream", controllers.GameStream(a, streams))
		authenticated.POST("/games/:id/join", controllers.JoinGame(a))
		authenticated.POST("/games/:id/leave", controllers.LeaveGame(a))
		authenticated.POST("/games/:id/start", controllers.StartGame(a))
		authenticated.POST("/games/:id/sets", controllers.SubmitSet(a))
		authenticated.POST("/games/:id/messages", controllers.PostMessage(a))
	}
}
