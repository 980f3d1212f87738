package handlers

import (
	"Setnet/services/app"
	"Setnet/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleGameSet submits three cards and acks the mapped outcome.
func HandleGameSet(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		result := a.EvaluateSet(utils.StringField(data, "id"), connID, utils.CardsField(data, "set"))
		client.Emit("GAME SET ACK", result)
	}
}

// HandleGameFeed appends a chat message to the game feed.
func HandleGameFeed(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		a.SendChat(utils.StringField(data, "id"), connID, utils.StringField(data, "message"))
	}
}
