package controllers

import (
	"net/http"

	"Setnet/middleware"
	"Setnet/services/app"
	"Setnet/services/game"
	"Setnet/services/sse"

	"github.com/gin-gonic/gin"
)

type createGameRequest struct {
	Name string `json:"name"`
}

type submitSetRequest struct {
	Set []game.Card `json:"set"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// @Summary Creates a game
// @Description Creates a game owned by the caller; the creator is seated immediately.
// @Tags games
// @Accept json
// @Produce json
// @Param request body object{name=string} true "Game name"
// @Success 200 {object} object{success=bool,id=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/games [post]
func CreateGame(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.SessionUserID(c)

		var req createGameRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Game name is required"})
			return
		}

		id, ok := a.CreateGame(userID, req.Name)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create game"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
	}
}

// @Summary Returns a game's full state
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} app.GameData
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/games/{id} [get]
func GetGame(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := a.GameData(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// @Summary Subscribes to game updates
// @Description Opens a server-sent-event stream emitting a GAME UPDATE snapshot on every change to the game. The current snapshot is sent immediately.
// @Tags games
// @Produce text/event-stream
// @Param id path string true "Game id"
// @Success 200 {string} string "event stream"
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/games/{id}/stream [get]
func GameStream(a *app.App, streams *sse.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		gameID := c.Param("id")
		data, ok := a.GameData(gameID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		ch, cancel := streams.AddGameClient(userID, gameID)
		defer cancel()

		setupStream(c)

		if msg, err := sse.Format(app.EventGameUpdate, data); err == nil {
			c.Writer.Write(msg)
			c.Writer.Flush()
		}

		streamLoop(c, ch)
	}
}

// @Summary Joins a game
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/games/{id}/join [post]
func JoinGame(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.SessionUserID(c)

		if !a.JoinGame(c.Param("id"), userID) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to join game"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary Leaves a game
// @Description Unseats the caller; a game with no members left is destroyed.
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/games/{id}/leave [post]
func LeaveGame(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.SessionUserID(c)

		if !a.LeaveGame(c.Param("id"), userID) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to leave game"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary Starts a game
// @Description Only the owner can start a game, and only once.
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} object{success=bool}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/games/{id}/start [post]
func StartGame(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.SessionUserID(c)

		if !a.StartGame(c.Param("id"), userID) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Only the game owner can start the game"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary Submits a set
// @Description Evaluates three cards against the board and returns the outcome.
// @Tags games
// @Accept json
// @Produce json
// @Param id path string true "Game id"
// @Param request body object{set=[]string} true "Three cards"
// @Success 200 {object} app.SetResult
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/games/{id}/sets [post]
func SubmitSet(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.SessionUserID(c)

		var req submitSetRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Set == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid set format"})
			return
		}

		c.JSON(http.StatusOK, a.EvaluateSet(c.Param("id"), userID, req.Set))
	}
}

// @Summary Sends a chat message
// @Description Appends a chat entry to the game feed.
// @Tags games
// @Accept json
// @Produce json
// @Param id path string true "Game id"
// @Param request body object{message=string} true "Chat message"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/games/{id}/messages [post]
func PostMessage(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.SessionUserID(c)

		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Message is required"})
			return
		}

		if !a.SendChat(c.Param("id"), userID, req.Message) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
