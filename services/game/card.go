package game

import (
	game_constants "Setnet/constants/game"
)

// Card is a 4-digit string, one digit per attribute (shape, color, count,
// fill), each digit in [0,2]. Cards are plain values: two cards are the same
// card exactly when the strings are equal.
type Card string

// IsWellFormedCard reports whether s is exactly 4 digits, each in [0,2].
func IsWellFormedCard(s Card) bool {
	if len(s) != game_constants.CardAttributes {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '2' {
			return false
		}
	}
	return true
}

// ThirdCard returns the unique card that completes a set with a and b. For
// each attribute, equal values are kept and differing values are completed
// with 3-a-b, the remaining value in [0,2]. Both inputs must be well formed.
func ThirdCard(a, b Card) Card {
	var out [game_constants.CardAttributes]byte
	for i := 0; i < game_constants.CardAttributes; i++ {
		if a[i] == b[i] {
			out[i] = a[i]
		} else {
			out[i] = byte('0' + 3 - (a[i] - '0') - (b[i] - '0'))
		}
	}
	return Card(out[:])
}

// IsValidSet reports whether a, b and c form a set: per attribute, all three
// values are either identical or pairwise distinct.
func IsValidSet(a, b, c Card) bool {
	return ThirdCard(a, b) == c
}

// FullDeck enumerates the 81-card universe in a fixed order.
func FullDeck() []Card {
	deck := make([]Card, 0, game_constants.DeckSize)
	for i := 0; i < game_constants.AttributeValues; i++ {
		for j := 0; j < game_constants.AttributeValues; j++ {
			for k := 0; k < game_constants.AttributeValues; k++ {
				for l := 0; l < game_constants.AttributeValues; l++ {
					card := [4]byte{byte('0' + i), byte('0' + j), byte('0' + k), byte('0' + l)}
					deck = append(deck, Card(card[:]))
				}
			}
		}
	}
	return deck
}
