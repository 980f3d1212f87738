package handlers

import (
	"log"

	"Setnet/services/app"
	socketio_types "Setnet/services/socket_io/types"
	"Setnet/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleUserEnter registers the connection as a user, generating a nickname
// when the client sends none.
func HandleUserEnter(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		data := utils.Payload(args)
		nickname := utils.StringField(data, "nickname")

		u, err := a.CreateUser(connID, nickname)
		if err != nil {
			log.Printf("Failed to create user for client %s: %v", connID, err)
			client.Emit("USER ENTER ACK", gin.H{"success": false, "errorMessage": "Failed to create user"})
			return
		}

		log.Printf("Client %s logged in as %q", connID, u.Nickname)
		client.Emit("USER ENTER ACK", gin.H{"success": true, "nickname": u.Nickname})
	}
}

// HandleUserExit logs the user out, cascading out of any game first.
func HandleUserExit(a *app.App, client *socket.Socket, connID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		success := a.DeleteUser(connID)
		if !success {
			log.Printf("Failed to log out client %s", connID)
		}
		client.Emit("USER EXIT ACK", success)
	}
}

// HandleDisconnecting drops the connection registration. When the identity
// was socket-scoped (no login token), the user itself is removed too.
func HandleDisconnecting(a *app.App, sio *socketio_types.SocketServer, connID string, ephemeral bool) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("Client %s disconnected", connID)
		if ephemeral {
			a.DeleteUser(connID)
		}
		sio.RemoveConnection(connID)
	}
}
