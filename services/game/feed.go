package game

import "encoding/json"

// FeedKind is the closed set of event kinds a game feed can carry.
type FeedKind string

const (
	FeedCreate FeedKind = "create"
	FeedJoin   FeedKind = "join"
	FeedLeave  FeedKind = "leave"
	FeedStart  FeedKind = "start"
	FeedSet    FeedKind = "set"
	FeedFail   FeedKind = "fail"
	FeedChat   FeedKind = "chat"
)

// FeedMessage is one entry of a game's append-only event log. Data is empty
// for membership/lifecycle kinds, the chat text for FeedChat, and a JSON
// array of the three submitted cards for FeedSet and FeedFail.
type FeedMessage struct {
	UserID string   `json:"userId"`
	Kind   FeedKind `json:"type"`
	Data   string   `json:"data"`
}

func cardsJSON(cards []Card) string {
	b, err := json.Marshal(cards)
	if err != nil {
		return ""
	}
	return string(b)
}
