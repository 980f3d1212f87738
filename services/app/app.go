package app

import (
	"log"
	"sync"

	"Setnet/services/game"
	"Setnet/services/users"
)

// Push event names. Payloads are full snapshots, never deltas.
const (
	EventLobbyUpdate = "LOBBY UPDATE"
	EventGameUpdate  = "GAME UPDATE"
)

// Broadcaster delivers a named snapshot event to a set of connection ids.
// Implementations must be best-effort: a broken recipient is skipped, never
// fatal, and never stalls the remaining recipients.
type Broadcaster interface {
	Broadcast(clientIDs []string, event string, payload interface{})
}

// App composes the user directory and the game registry into the operations
// the transports expose, and pushes fresh snapshots to everyone affected by
// a mutation. Nickname resolution happens here; games only ever see ids.
type App struct {
	users *users.Directory
	games *game.Registry

	bmu          sync.RWMutex
	broadcasters []Broadcaster
}

func New(directory *users.Directory, registry *game.Registry) *App {
	return &App{users: directory, games: registry}
}

// RegisterBroadcaster adds a push sink (socket.io server, SSE manager, ...).
func (a *App) RegisterBroadcaster(b Broadcaster) {
	a.bmu.Lock()
	defer a.bmu.Unlock()
	a.broadcasters = append(a.broadcasters, b)
}

// CreateUser registers a user for the given connection id and announces the
// new lobby roster.
func (a *App) CreateUser(id, nickname string) (users.User, error) {
	u, err := a.users.Create(id, nickname)
	if err != nil {
		return users.User{}, err
	}

	a.sendLobbyUpdate()
	return u, nil
}

// DeleteUser removes the user, first cascading out of any game it sits in.
func (a *App) DeleteUser(id string) bool {
	u, ok := a.users.Get(id)
	if !ok {
		return false
	}

	if u.GameID != "" {
		a.LeaveGame(u.GameID, id)
	}

	result := a.users.Delete(id)
	a.sendLobbyUpdate()
	return result
}

// Nickname resolves a user id for display.
func (a *App) Nickname(id string) string {
	u, ok := a.users.Get(id)
	if !ok {
		return "unnamed user"
	}
	return u.Nickname
}

// LobbyData assembles the lobby snapshot: idle users plus an overview of
// every game, with member ids resolved to nicknames.
func (a *App) LobbyData() LobbyData {
	idle := a.users.IdleUsers()

	data := LobbyData{
		Clients: make([]string, 0, len(idle)),
		Users:   make([]string, 0, len(idle)),
		Games:   []GameOverview{},
	}
	for _, u := range idle {
		data.Clients = append(data.Clients, u.ID)
		data.Users = append(data.Users, u.Nickname)
	}

	for _, g := range a.games.All() {
		ov := g.Overview()
		members := make([]string, 0, len(ov.Members))
		for _, id := range ov.Members {
			members = append(members, a.Nickname(id))
		}
		data.Games = append(data.Games, GameOverview{
			ID:       ov.ID,
			Name:     ov.Name,
			Members:  members,
			Started:  ov.Started,
			Finished: ov.Finished,
		})
	}

	return data
}

// CreateGame creates a game owned by creatorID and seats the creator,
// leaving any game it was in before.
func (a *App) CreateGame(creatorID, name string) (string, bool) {
	u, ok := a.users.Get(creatorID)
	if !ok {
		log.Printf("Cannot create game for unknown user %s", creatorID)
		return "", false
	}
	if u.GameID != "" {
		a.LeaveGame(u.GameID, creatorID)
	}

	g := a.games.Create(creatorID, name)
	a.users.SetCurrentGame(creatorID, g.ID())

	a.sendLobbyUpdate()
	a.sendGameUpdate(g.ID())

	return g.ID(), true
}

// JoinGame seats userID in the game. Joining the game you are already in is
// a successful no-op; joining a different game leaves the old one first.
func (a *App) JoinGame(gameID, userID string) bool {
	u, ok := a.users.Get(userID)
	if !ok {
		log.Printf("Cannot add unknown user %s to game %s", userID, gameID)
		return false
	}
	g, ok := a.games.Get(gameID)
	if !ok {
		log.Printf("Cannot add user %s to game %s - game does not exist", userID, gameID)
		return false
	}

	if u.GameID == gameID {
		return true
	}
	if u.GameID != "" {
		a.LeaveGame(u.GameID, userID)
	}

	g.AddMember(userID)
	a.users.SetCurrentGame(userID, gameID)

	a.sendLobbyUpdate()
	a.sendGameUpdate(gameID)

	return true
}

// LeaveGame unseats userID, deletes the game when it empties out, and
// returns the user to the lobby roster.
func (a *App) LeaveGame(gameID, userID string) bool {
	g, ok := a.games.Get(gameID)
	if !ok {
		log.Printf("Cannot remove user %s from game %s - game does not exist", userID, gameID)
		return false
	}

	if !g.RemoveMember(userID) {
		log.Printf("Cannot remove user %s from game %s - user not in game", userID, gameID)
		return false
	}

	a.users.SetCurrentGame(userID, "")
	a.sendGameUpdate(gameID)

	if !g.HasMembers() {
		a.games.Remove(gameID)
	}

	a.sendLobbyUpdate()
	return true
}

// StartGame starts the game on behalf of userID. Fails unless userID owns
// the game and it has not started yet.
func (a *App) StartGame(gameID, userID string) bool {
	g, ok := a.games.Get(gameID)
	if !ok {
		log.Printf("Cannot start game %s - game does not exist", gameID)
		return false
	}

	if !g.Start(userID) {
		return false
	}

	a.sendGameUpdate(gameID)
	a.sendLobbyUpdate()
	return true
}

// EvaluateSet submits three cards on behalf of userID and maps the engine
// outcome to a client-facing result. Snapshots are pushed for every outcome
// that touched state (anything on-board and well-formed).
func (a *App) EvaluateSet(gameID, userID string, cards []game.Card) SetResult {
	g, ok := a.games.Get(gameID)
	if !ok {
		log.Printf("Cannot evaluate set in game %s - game does not exist", gameID)
		return SetResult{Success: false, Message: "Game not found"}
	}

	outcome := g.EvaluateSet(userID, cards)
	log.Printf("Evaluated set by user %s in game %s with outcome %d", userID, gameID, outcome)

	var result SetResult
	switch outcome {
	case game.OutcomeMalformed:
		result = SetResult{Success: false, Message: "Cards are formatted incorrectly"}
	case game.OutcomeNotOnBoard:
		result = SetResult{Success: false, Message: "Cards are not on the board"}
	case game.OutcomeInvalid:
		result = SetResult{Success: false, Message: "Invalid set"}
	case game.OutcomeValidContinue:
		result = SetResult{Success: true, Message: "Valid set; game not yet finished"}
	case game.OutcomeValidFinished:
		result = SetResult{Success: true, Message: "Valid set; game finished"}
	}

	switch outcome {
	case game.OutcomeInvalid, game.OutcomeValidContinue, game.OutcomeValidFinished:
		a.sendGameUpdate(gameID)
		a.sendLobbyUpdate()
	}

	return result
}

// SendChat appends a chat entry to the game feed and pushes the new detail.
func (a *App) SendChat(gameID, userID, message string) bool {
	g, ok := a.games.Get(gameID)
	if !ok {
		log.Printf("Cannot add feed message to game %s - game does not exist", gameID)
		return false
	}

	g.AddFeedMessage(userID, game.FeedChat, message)
	a.sendGameUpdate(gameID)
	return true
}

// TriggerGameUpdate re-pushes the current detail snapshot to the members,
// e.g. when a client opens its game view.
func (a *App) TriggerGameUpdate(gameID string) {
	a.sendGameUpdate(gameID)
}

// GameData returns the detail snapshot with owner, scores and feed resolved
// to nicknames. Members stay ids; they double as broadcast targets.
func (a *App) GameData(gameID string) (GameData, bool) {
	g, ok := a.games.Get(gameID)
	if !ok {
		return GameData{}, false
	}

	detail := g.Detail()

	scores := make(map[string]int, len(detail.Scores))
	for id, score := range detail.Scores {
		if u, ok := a.users.Get(id); ok {
			scores[u.Nickname] = score
		}
	}

	feed := make([]FeedEntry, 0, len(detail.Feed))
	for _, msg := range detail.Feed {
		feed = append(feed, FeedEntry{
			Username: a.Nickname(msg.UserID),
			MsgType:  msg.Kind,
			Data:     msg.Data,
		})
	}

	return GameData{
		ID:       detail.ID,
		Members:  detail.Members,
		Cards:    detail.Cards,
		Scores:   scores,
		Feed:     feed,
		Owner:    a.Nickname(detail.Owner),
		Started:  detail.Started,
		Finished: detail.Finished,
	}, true
}

func (a *App) sendLobbyUpdate() {
	data := a.LobbyData()
	a.broadcast(data.Clients, EventLobbyUpdate, data)
}

func (a *App) sendGameUpdate(gameID string) {
	data, ok := a.GameData(gameID)
	if !ok {
		return
	}
	a.broadcast(data.Members, EventGameUpdate, data)
}

func (a *App) broadcast(clientIDs []string, event string, payload interface{}) {
	a.bmu.RLock()
	sinks := append([]Broadcaster(nil), a.broadcasters...)
	a.bmu.RUnlock()

	for _, b := range sinks {
		b.Broadcast(clientIDs, event, payload)
	}
}
