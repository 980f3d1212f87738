package game_constants

// Card encoding: 4 attributes (shape, color, count, fill), each in [0,2].
const CardAttributes = 4
const AttributeValues = 3

// Full deck is every attribute combination: 3^4 cards.
const DeckSize = 81

// The board is topped up to 12 cards whenever the deck allows it.
const BoardTarget = 12
const DrawSize = 3
