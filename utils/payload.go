package utils

import (
	"Setnet/services/game"
)

// Socket.io payloads arrive as decoded JSON. These helpers pull typed fields
// out of the first argument without panicking on bad shapes.

// Payload returns the first event argument as an object, or nil.
func Payload(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	m, ok := args[0].(map[string]interface{})
	if !ok {
		return nil
	}
	return m
}

// StringField returns m[key] when it is a string, "" otherwise.
func StringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, ok := m[key].(string)
	if !ok {
		return ""
	}
	return s
}

// CardsField returns m[key] decoded as a list of cards. Non-string elements
// are kept as empty cards so the engine rejects the submission as malformed
// instead of silently shrinking it.
func CardsField(m map[string]interface{}, key string) []game.Card {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	cards := make([]game.Card, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		cards = append(cards, game.Card(s))
	}
	return cards
}
