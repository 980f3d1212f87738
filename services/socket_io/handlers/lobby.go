package handlers

import (
	"Setnet/services/app"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleLobbyList answers with the current lobby snapshot.
func HandleLobbyList(a *app.App, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		client.Emit("LOBBY LIST ACK", a.LobbyData())
	}
}
