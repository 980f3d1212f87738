package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Setnet/middleware"
	"Setnet/routes"
	"Setnet/services/app"
	"Setnet/services/game"
	"Setnet/services/sse"
	"Setnet/services/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ACCESS_PASSWORD", "sekrit")
	t.Setenv("KEY", "test-session-key")

	a := app.New(users.NewDirectory(), game.NewRegistry())
	streams := sse.NewManager()
	a.RegisterBroadcaster(streams)

	r := gin.New()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, a, streams)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, nickname string) []*http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"nickname":"`+nickname+`","password":"sekrit"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPing(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"nickname":"alice","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", `{"nickname":"alice"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLobbyRequiresAuth(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodGet, "/api/lobby", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndLobby(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"nickname":"alice","password":"sekrit"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"], "login returns a socket handshake token")
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(r, http.MethodGet, "/api/lobby", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestLoginGeneratesNickname(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"password":"sekrit"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := decode(t, w)["user"].(map[string]interface{})
	assert.NotEmpty(t, user["nickname"])
}

func TestLogout(t *testing.T) {
	r := setupServer(t)
	cookies := login(t, r, "alice")

	w := doJSON(r, http.MethodPost, "/api/auth/logout", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	// The cookie store is stateless: only the cleared cookie from the logout
	// response counts, not the stale login one.
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	w = doJSON(r, http.MethodGet, "/api/lobby", "", cleared)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGameFlowOverREST(t *testing.T) {
	r := setupServer(t)
	alice := login(t, r, "alice")
	bob := login(t, r, "bob")

	// Create
	w := doJSON(r, http.MethodPost, "/api/games", `{"name":"friday night"}`, alice)
	require.Equal(t, http.StatusOK, w.Code)
	gameID, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, gameID)

	w = doJSON(r, http.MethodPost, "/api/games", `{}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code, "a game needs a name")

	// Detail
	w = doJSON(r, http.MethodGet, "/api/games/"+gameID, "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["owner"])

	w = doJSON(r, http.MethodGet, "/api/games/nope", "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Join
	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/join", "", bob)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/games/nope/join", "", bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Start: bob is not the owner
	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/start", "", bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/start", "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/games/"+gameID, "", alice)
	detail := decode(t, w)
	assert.Equal(t, true, detail["started"])
	assert.GreaterOrEqual(t, len(detail["cards"].([]interface{})), 12)

	// Submit: malformed shapes
	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/sets", `{"set":"0000"}`, bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/sets", `{"set":["0000","11"]}`, bob)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Cards are formatted incorrectly", result["message"])

	// Chat
	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/messages", `{"message":"good luck"}`, bob)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/messages", `{}`, bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Leave; the emptied game disappears
	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/leave", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/games/"+gameID+"/leave", "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/games/"+gameID, "", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
