package app

import "Setnet/services/game"

// GameOverview is one lobby row: game overview with nicknames resolved.
type GameOverview struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Members  []string `json:"members"`
	Started  bool     `json:"started"`
	Finished bool     `json:"finished"`
}

// LobbyData is the lobby snapshot: Clients carries the idle users' ids (the
// broadcast targets), Users the matching nicknames.
type LobbyData struct {
	Clients []string       `json:"clients"`
	Users   []string       `json:"users"`
	Games   []GameOverview `json:"games"`
}

// FeedEntry is a feed message with the actor resolved to a nickname.
type FeedEntry struct {
	Username string        `json:"username"`
	MsgType  game.FeedKind `json:"msgType"`
	Data     string        `json:"data"`
}

// GameData is the full game snapshot pushed to members. Members are user
// ids; owner, scores and feed are keyed by nickname.
type GameData struct {
	ID       string         `json:"id"`
	Members  []string       `json:"members"`
	Cards    []game.Card    `json:"cards"`
	Scores   map[string]int `json:"scores"`
	Feed     []FeedEntry    `json:"feed"`
	Owner    string         `json:"owner"`
	Started  bool           `json:"started"`
	Finished bool           `json:"finished"`
}

// SetResult is the client-facing outcome of a set submission.
type SetResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
