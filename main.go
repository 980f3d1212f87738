package main

import (
	"log"
	"os"

	_ "Setnet/docs"
	"Setnet/middleware"
	"Setnet/routes"
	"Setnet/services/app"
	"Setnet/services/game"
	"Setnet/services/socket_io"
	socketio_types "Setnet/services/socket_io/types"
	"Setnet/services/sse"
	"Setnet/services/users"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Setnet API
// @version 1.0
// @description Gin server for the real-time Set card game
// @BasePath /
func main() {
	godotenv.Load()

	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The whole authoritative state lives in these two in-memory stores.
	directory := users.NewDirectory()
	registry := game.NewRegistry()
	a := app.New(directory, registry)

	streams := sse.NewManager()
	a.RegisterBroadcaster(streams)

	sio := &socket_io.SetSocketServer{}

	r := gin.Default()

	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, a, streams)

	sio.Start(r, a)
	a.RegisterBroadcaster((*socketio_types.SocketServer)(sio))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("USE_HTTPS") == "true" {
		certFile := os.Getenv("CERT_FILE")
		keyFile := os.Getenv("KEY_FILE")
		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
