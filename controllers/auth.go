package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"Setnet/middleware"
	"Setnet/services/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// checkAccessPassword verifies the shared access password. A bcrypt hash in
// ACCESS_PASSWORD_HASH wins; ACCESS_PASSWORD is the plaintext dev fallback.
func checkAccessPassword(password string) bool {
	if strings.TrimSpace(password) == "" {
		return false
	}
	if hash := os.Getenv("ACCESS_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return password == os.Getenv("ACCESS_PASSWORD")
}

// @Summary Logs a user in
// @Description Checks the access password, registers a user (generating a nickname if none is given) and binds it to the session. Returns the user and a socket.io handshake token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{nickname=string,password=string} true "Login request"
// @Success 200 {object} object{success=bool,user=object,token=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/auth/login [post]
func Login(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
			return
		}

		if !checkAccessPassword(req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
			return
		}

		if _, ok := middleware.SessionUserID(c); ok {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Already logged in"})
			return
		}

		userID := uuid.NewString()
		u, err := a.CreateUser(userID, req.Nickname)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user"})
			return
		}

		if err := middleware.SetSessionUserID(c, userID); err != nil {
			a.DeleteUser(userID)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save session"})
			return
		}

		token, err := middleware.IssueSocketToken(userID)
		if err != nil {
			log.Printf("Failed to issue socket token for user %s: %v", userID, err)
		}

		log.Printf("User %q (%s) logged in", u.Nickname, userID)
		c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "token": token})
	}
}

// @Summary Logs the user out
// @Description Removes the user (leaving any current game) and clears the session.
// @Tags auth
// @Produce json
// @Success 200 {object} object{success=bool}
// @Failure 401 {object} object{error=string}
// @Router /api/auth/logout [post]
func Logout(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		success := a.DeleteUser(userID)

		if err := middleware.ClearSession(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}

		log.Printf("User %s logged out", userID)
		c.JSON(http.StatusOK, gin.H{"success": success})
	}
}
