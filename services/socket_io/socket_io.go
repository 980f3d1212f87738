package socket_io

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Setnet/middleware"
	"Setnet/services/app"
	"Setnet/services/socket_io/handlers"
	socketio_types "Setnet/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type SetSocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the router and wires the game
// events. Connections presenting a valid login token are bound to that
// session's user id; anonymous connections get their socket id as identity
// and are removed again on disconnect.
func (sio *SetSocketServer) Start(router *gin.Engine, a *app.App) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and support
	// slower networks.
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Connections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		connID, ephemeral := resolveIdentity(client)
		log.Printf("Received connection %s (ephemeral=%v)", connID, ephemeral)

		(*socketio_types.SocketServer)(sio).AddConnection(connID, client)
		client.Emit("CLIENT CONNECT ACK", true)

		client.On("USER ENTER", handlers.HandleUserEnter(a, client, connID))
		client.On("USER EXIT", handlers.HandleUserExit(a, client, connID))

		client.On("LOBBY LIST", handlers.HandleLobbyList(a, client))

		client.On("GAME CREATE", handlers.HandleGameCreate(a, client, connID))
		client.On("GAME JOIN", handlers.HandleGameJoin(a, client, connID))
		client.On("GAME LEAVE", handlers.HandleGameLeave(a, client, connID))
		client.On("GAME START", handlers.HandleGameStart(a, client, connID))
		client.On("GAME UPDATE INIT", handlers.HandleGameUpdateInit(a, client))

		client.On("GAME SET", handlers.HandleGameSet(a, client, connID))
		client.On("GAME FEED", handlers.HandleGameFeed(a, client, connID))

		client.On("disconnecting", handlers.HandleDisconnecting(a, (*socketio_types.SocketServer)(sio), connID, ephemeral))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)
	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}

// resolveIdentity binds the connection to the logged-in user when the
// handshake carries a valid token, and to the socket id otherwise.
func resolveIdentity(client *socket.Socket) (connID string, ephemeral bool) {
	if auth, ok := client.Handshake().Auth.(map[string]interface{}); ok {
		if token, ok := auth["token"].(string); ok && token != "" {
			userID, err := middleware.ParseSocketToken(token)
			if err == nil {
				return userID, false
			}
			log.Printf("Rejected socket token: %v", err)
		}
	}
	return string(client.Id()), true
}
