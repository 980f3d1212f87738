package controllers

import (
	"net/http"

	"Setnet/middleware"
	"Setnet/services/app"
	"Setnet/services/sse"

	"github.com/gin-gonic/gin"
)

// @Summary Health check
// @Tags meta
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /api/ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Lists the lobby
// @Description Returns the idle users and an overview of every game.
// @Tags lobby
// @Produce json
// @Success 200 {object} app.LobbyData
// @Failure 401 {object} object{error=string}
// @Router /api/lobby [get]
func GetLobby(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, a.LobbyData())
	}
}

// @Summary Subscribes to lobby updates
// @Description Opens a server-sent-event stream emitting a LOBBY UPDATE snapshot on every lobby-affecting change. The current snapshot is sent immediately.
// @Tags lobby
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 401 {object} object{error=string}
// @Router /api/lobby/stream [get]
func LobbyStream(a *app.App, streams *sse.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		ch, cancel := streams.AddLobbyClient(userID)
		defer cancel()

		setupStream(c)

		if msg, err := sse.Format(app.EventLobbyUpdate, a.LobbyData()); err == nil {
			c.Writer.Write(msg)
			c.Writer.Flush()
		}

		streamLoop(c, ch)
	}
}

func setupStream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()
}

// streamLoop forwards broadcast frames until the client goes away or the
// registration is replaced.
func streamLoop(c *gin.Context, ch <-chan []byte) {
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.Writer.Write(msg)
			c.Writer.Flush()
		}
	}
}
