package handlers

import (
	"Setnet/services/app"
	"Setnet/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleGameCreate creates a game named by the client and seats the creator.
func HandleGameCreate(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		id, _ := a.CreateGame(connID, utils.StringField(data, "name"))
		client.Emit("GAME CREATE ACK", gin.H{"id": id})
	}
}

// HandleGameJoin seats the user in an existing game.
func HandleGameJoin(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		success := a.JoinGame(utils.StringField(data, "id"), connID)
		client.Emit("GAME JOIN ACK", success)
	}
}

// HandleGameLeave unseats the user; an emptied game is destroyed.
func HandleGameLeave(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		success := a.LeaveGame(utils.StringField(data, "id"), connID)
		client.Emit("GAME LEAVE ACK", success)
	}
}

// HandleGameStart starts the game; only the owner may.
func HandleGameStart(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		success := a.StartGame(utils.StringField(data, "id"), connID)
		client.Emit("GAME START ACK", success)
	}
}

// HandleGameUpdateInit re-pushes the detail snapshot, e.g. when the client
// opens its game view.
func HandleGameUpdateInit(a *app.App, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		a.TriggerGameUpdate(utils.StringField(data, "id"))
	}
}
