package game

import (
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	game_constants "Setnet/constants/game"
)

// Status is the game lifecycle state. It only ever moves forward.
type Status int

const (
	StatusWaiting Status = iota
	StatusInProgress
	StatusFinished
)

// Outcome is the result of a set submission.
type Outcome int

const (
	OutcomeMalformed Outcome = iota
	OutcomeNotOnBoard
	OutcomeInvalid
	OutcomeValidContinue
	OutcomeValidFinished
)

// Overview is the summary snapshot shown in the lobby.
type Overview struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Members  []string `json:"members"`
	Started  bool     `json:"started"`
	Finished bool     `json:"finished"`
}

// Detail is the full snapshot pushed to members of the game.
type Detail struct {
	ID       string         `json:"id"`
	Members  []string       `json:"members"`
	Cards    []Card         `json:"cards"`
	Scores   map[string]int `json:"scores"`
	Feed     []FeedMessage  `json:"feed"`
	Owner    string         `json:"owner"`
	Started  bool           `json:"started"`
	Finished bool           `json:"finished"`
}

// Game holds one game's deck, board, members, scores and feed. Every
// operation takes the game mutex, so calls on the same game are serialized
// while distinct games proceed in parallel.
type Game struct {
	mu sync.Mutex

	id        string
	name      string
	owner     string
	createdAt time.Time

	status Status
	deck   []Card
	board  []Card
	// board index by card, rebuilt after every structural board change
	boardIndex map[Card]int

	members []string
	scores  map[string]int
	feed    []FeedMessage

	rng *rand.Rand
}

// New creates a game owned by ownerID with a full, unshuffled deck and an
// empty board. The owner is not seated yet; the registry does that.
func New(id, ownerID, name string) *Game {
	return NewSeeded(id, ownerID, name, time.Now().UnixNano())
}

// NewSeeded is New with a fixed shuffle seed, for reproducible games.
func NewSeeded(id, ownerID, name string, seed int64) *Game {
	g := &Game{
		id:         id,
		name:       name,
		owner:      ownerID,
		createdAt:  time.Now(),
		deck:       FullDeck(),
		boardIndex: make(map[Card]int),
		scores:     make(map[string]int),
		rng:        rand.New(rand.NewSource(seed)),
	}
	g.appendFeed(ownerID, FeedCreate, "")
	return g
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Name() string  { return g.name }
func (g *Game) Owner() string { return g.owner }

func (g *Game) CreatedAt() time.Time { return g.createdAt }

// AddMember seats userID and records a join entry. Joining is allowed at any
// status; joining a game you are already in is a no-op.
func (g *Game) AddMember(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, m := range g.members {
		if m == userID {
			return
		}
	}

	g.members = append(g.members, userID)
	g.appendFeed(userID, FeedJoin, "")
}

// RemoveMember unseats userID and records a leave entry. Returns false if
// userID is not a member. Score entries are kept on leave.
func (g *Game) RemoveMember(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, m := range g.members {
		if m == userID {
			g.members = append(g.members[:i], g.members[i+1:]...)
			g.appendFeed(userID, FeedLeave, "")
			return true
		}
	}

	return false
}

// HasMembers reports whether anyone is still seated.
func (g *Game) HasMembers() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members) > 0
}

// MemberIDs returns the seated user ids in join order.
func (g *Game) MemberIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.members...)
}

// Start moves the game to in-progress: zero scores for every current member,
// shuffle the deck, deal 12 cards and keep dealing triples until the board
// holds at least one set. Only the owner may start, and only once.
func (g *Game) Start(requesterID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if requesterID != g.owner {
		log.Printf("game %s: non-owner %s attempted to start", g.id, requesterID)
		return false
	}
	if g.status != StatusWaiting {
		log.Printf("game %s: start requested but game already started", g.id)
		return false
	}

	g.status = StatusInProgress

	g.scores = make(map[string]int, len(g.members))
	for _, m := range g.members {
		g.scores[m] = 0
	}

	g.shuffleDeck()

	for i := 0; i < game_constants.BoardTarget/game_constants.DrawSize; i++ {
		g.dealThree(0, 0, 0)
	}
	for !g.hasSet() {
		if !g.dealThree(len(g.board), len(g.board), len(g.board)) {
			break
		}
	}

	g.appendFeed(requesterID, FeedStart, "")
	return true
}

// EvaluateSet applies a set submission by userID. On a valid set the three
// cards are removed, the score goes up by one and the board is restored to a
// state with at least one set (dealing from the deck as needed); the game
// finishes when the deck runs out with no set left. On an invalid but
// well-formed, on-board triple the score goes down by one. Malformed or
// off-board submissions leave all state untouched.
func (g *Game) EvaluateSet(userID string, cards []Card) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(cards) != game_constants.DrawSize {
		return OutcomeMalformed
	}
	for _, c := range cards {
		if !IsWellFormedCard(c) {
			return OutcomeMalformed
		}
	}
	if cards[0] == cards[1] || cards[0] == cards[2] || cards[1] == cards[2] {
		return OutcomeMalformed
	}

	var indices [game_constants.DrawSize]int
	for i, c := range cards {
		idx, ok := g.boardIndex[c]
		if !ok {
			return OutcomeNotOnBoard
		}
		indices[i] = idx
	}

	// Index bookkeeping desync is a programming defect; fail the operation
	// loudly instead of mutating an inconsistent board.
	for i, idx := range indices {
		if idx >= len(g.board) || g.board[idx] != cards[i] {
			log.Printf("game %s: board index desync at %d (%s), refusing submission", g.id, idx, cards[i])
			return OutcomeNotOnBoard
		}
	}

	if _, ok := g.scores[userID]; !ok {
		g.scores[userID] = 0
	}

	if !IsValidSet(cards[0], cards[1], cards[2]) {
		g.scores[userID]--
		g.appendFeed(userID, FeedFail, cardsJSON(cards))
		return OutcomeInvalid
	}

	// Remove highest index first so the lower ones stay valid.
	sort.Sort(sort.Reverse(sort.IntSlice(indices[:])))
	for _, idx := range indices {
		g.board = append(g.board[:idx], g.board[idx+1:]...)
	}
	g.reindexBoard()

	g.scores[userID]++
	g.appendFeed(userID, FeedSet, cardsJSON(cards))

	if len(g.deck) > 0 && len(g.board) < game_constants.BoardTarget {
		// Refill the vacated positions, lowest first, keeping the relative
		// order of the remaining cards.
		g.dealThree(indices[2], indices[1], indices[0])
	}

	for !g.hasSet() {
		if !g.dealThree(len(g.board), len(g.board), len(g.board)) {
			g.status = StatusFinished
			return OutcomeValidFinished
		}
	}

	return OutcomeValidContinue
}

// Remaining returns the number of undealt cards.
func (g *Game) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.deck)
}

// AddFeedMessage appends an arbitrary feed entry; chat goes through here.
func (g *Game) AddFeedMessage(userID string, kind FeedKind, data string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.appendFeed(userID, kind, data)
}

// Overview returns the lobby summary snapshot.
func (g *Game) Overview() Overview {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Overview{
		ID:       g.id,
		Name:     g.name,
		Members:  append([]string(nil), g.members...),
		Started:  g.status != StatusWaiting,
		Finished: g.status == StatusFinished,
	}
}

// Detail returns the full snapshot pushed to players. Everything is copied;
// callers never see live internal state.
func (g *Game) Detail() Detail {
	g.mu.Lock()
	defer g.mu.Unlock()

	scores := make(map[string]int, len(g.scores))
	for id, s := range g.scores {
		scores[id] = s
	}

	return Detail{
		ID:       g.id,
		Members:  append([]string(nil), g.members...),
		Cards:    append([]Card(nil), g.board...),
		Scores:   scores,
		Feed:     append([]FeedMessage(nil), g.feed...),
		Owner:    g.owner,
		Started:  g.status != StatusWaiting,
		Finished: g.status == StatusFinished,
	}
}

func (g *Game) appendFeed(userID string, kind FeedKind, data string) {
	g.feed = append(g.feed, FeedMessage{UserID: userID, Kind: kind, Data: data})
}

func (g *Game) shuffleDeck() {
	for i := len(g.deck) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	}
}

// dealThree moves three cards from the deck onto the board, inserting at the
// given positions in order. Positions beyond the current board length are
// clamped to an append. Returns false without dealing if fewer than three
// cards remain.
func (g *Game) dealThree(first, second, third int) bool {
	if len(g.deck) < game_constants.DrawSize {
		return false
	}
	if first < 0 || second < 0 || third < 0 {
		return false
	}

	for _, pos := range []int{first, second, third} {
		card := g.deck[len(g.deck)-1]
		g.deck = g.deck[:len(g.deck)-1]

		if pos > len(g.board) {
			pos = len(g.board)
		}
		g.board = append(g.board, "")
		copy(g.board[pos+1:], g.board[pos:])
		g.board[pos] = card
	}

	g.reindexBoard()
	return true
}

func (g *Game) reindexBoard() {
	g.boardIndex = make(map[Card]int, len(g.board))
	for i, c := range g.board {
		g.boardIndex[c] = i
	}
}

// hasSet reports whether any three board cards form a set. Any pair of cards
// determines a unique third; it is a set exactly when that card is on the
// board too.
func (g *Game) hasSet() bool {
	for i := 0; i < len(g.board); i++ {
		for j := i + 1; j < len(g.board); j++ {
			if _, ok := g.boardIndex[ThirdCard(g.board[i], g.board[j])]; ok {
				return true
			}
		}
	}
	return false
}
