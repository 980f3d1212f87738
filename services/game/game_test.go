package game_test

import (
	"testing"

	game_constants "Setnet/constants/game"
	"Setnet/services/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findSet returns three board cards forming a valid set, if any.
func findSet(board []game.Card) ([]game.Card, bool) {
	index := make(map[game.Card]bool, len(board))
	for _, c := range board {
		index[c] = true
	}
	for i := 0; i < len(board); i++ {
		for j := i + 1; j < len(board); j++ {
			third := game.ThirdCard(board[i], board[j])
			if index[third] {
				return []game.Card{board[i], board[j], third}, true
			}
		}
	}
	return nil, false
}

// findNonSet returns three board cards that do not form a set.
func findNonSet(board []game.Card) ([]game.Card, bool) {
	for i := 0; i < len(board); i++ {
		for j := i + 1; j < len(board); j++ {
			for k := j + 1; k < len(board); k++ {
				if !game.IsValidSet(board[i], board[j], board[k]) {
					return []game.Card{board[i], board[j], board[k]}, true
				}
			}
		}
	}
	return nil, false
}

// offBoardCards returns n cards that are not in play.
func offBoardCards(board []game.Card, n int) []game.Card {
	onBoard := make(map[game.Card]bool, len(board))
	for _, c := range board {
		onBoard[c] = true
	}
	var out []game.Card
	for _, c := range game.FullDeck() {
		if !onBoard[c] {
			out = append(out, c)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func newStartedGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.NewSeeded("g1", "owner", "friday night", 42)
	g.AddMember("owner")
	g.AddMember("p2")
	require.True(t, g.Start("owner"))
	return g
}

func TestNewGame(t *testing.T) {
	g := game.NewSeeded("g1", "owner", "friday night", 42)

	d := g.Detail()
	assert.False(t, d.Started)
	assert.False(t, d.Finished)
	assert.Empty(t, d.Cards)
	assert.Equal(t, 81, g.Remaining())
	require.Len(t, d.Feed, 1)
	assert.Equal(t, game.FeedCreate, d.Feed[0].Kind)
	assert.Equal(t, "owner", d.Feed[0].UserID)
}

func TestMembers(t *testing.T) {
	g := game.NewSeeded("g1", "owner", "friday night", 42)

	g.AddMember("owner")
	g.AddMember("p2")
	g.AddMember("p2") // joining twice is a no-op
	assert.Equal(t, []string{"owner", "p2"}, g.MemberIDs())

	assert.False(t, g.RemoveMember("ghost"))
	assert.True(t, g.RemoveMember("p2"))
	assert.False(t, g.RemoveMember("p2"))
	assert.Equal(t, []string{"owner"}, g.MemberIDs())
	assert.True(t, g.HasMembers())

	assert.True(t, g.RemoveMember("owner"))
	assert.False(t, g.HasMembers())
}

func TestStart(t *testing.T) {
	g := game.NewSeeded("g1", "owner", "friday night", 42)
	g.AddMember("owner")
	g.AddMember("p2")

	assert.False(t, g.Start("p2"), "non-owner must not start the game")
	assert.False(t, g.Detail().Started)

	require.True(t, g.Start("owner"))

	d := g.Detail()
	assert.True(t, d.Started)
	assert.False(t, d.Finished)
	assert.GreaterOrEqual(t, len(d.Cards), game_constants.BoardTarget)
	assert.Equal(t, 81, g.Remaining()+len(d.Cards), "no card may be lost or duplicated")
	assert.Equal(t, map[string]int{"owner": 0, "p2": 0}, d.Scores)

	_, ok := findSet(d.Cards)
	assert.True(t, ok, "the dealt board must contain a set")

	seen := make(map[game.Card]bool, len(d.Cards))
	for _, c := range d.Cards {
		assert.False(t, seen[c], "card %q dealt twice", c)
		seen[c] = true
	}

	assert.False(t, g.Start("owner"), "a game starts only once")
}

func TestEvaluateSetMalformed(t *testing.T) {
	g := newStartedGame(t)
	before := g.Detail()

	cases := [][]game.Card{
		nil,
		{"0000", "1111"},
		{"0000", "1111", "2222", "0011"},
		{"0000", "1111", "22222"},
		{"0000", "1111", "2223"},
		{before.Cards[0], before.Cards[0], before.Cards[1]},
	}
	for _, cards := range cases {
		assert.Equal(t, game.OutcomeMalformed, g.EvaluateSet("owner", cards), "cards %v", cards)
	}

	after := g.Detail()
	assert.Equal(t, before.Cards, after.Cards)
	assert.Equal(t, before.Scores, after.Scores)
	assert.Equal(t, before.Feed, after.Feed)
}

func TestEvaluateSetNotOnBoard(t *testing.T) {
	g := newStartedGame(t)
	before := g.Detail()

	off := offBoardCards(before.Cards, 3)
	require.Len(t, off, 3)

	assert.Equal(t, game.OutcomeNotOnBoard, g.EvaluateSet("owner", off))

	after := g.Detail()
	assert.Equal(t, before.Cards, after.Cards)
	assert.Equal(t, before.Scores, after.Scores)
	assert.Equal(t, before.Feed, after.Feed)
}

func TestEvaluateSetInvalid(t *testing.T) {
	g := newStartedGame(t)
	before := g.Detail()

	triple, ok := findNonSet(before.Cards)
	require.True(t, ok)

	assert.Equal(t, game.OutcomeInvalid, g.EvaluateSet("p2", triple))

	after := g.Detail()
	assert.Equal(t, before.Cards, after.Cards, "a failed claim leaves the board alone")
	assert.Equal(t, -1, after.Scores["p2"], "scores may go negative")

	last := after.Feed[len(after.Feed)-1]
	assert.Equal(t, game.FeedFail, last.Kind)
	assert.Equal(t, "p2", last.UserID)
	assert.Contains(t, last.Data, string(triple[0]))
}

func TestEvaluateSetValid(t *testing.T) {
	g := newStartedGame(t)
	before := g.Detail()

	set, ok := findSet(before.Cards)
	require.True(t, ok)

	assert.Equal(t, game.OutcomeValidContinue, g.EvaluateSet("owner", set))

	after := g.Detail()
	assert.Equal(t, 1, after.Scores["owner"])
	assert.GreaterOrEqual(t, len(after.Cards), game_constants.BoardTarget, "board is topped back up toward 12")
	assert.Equal(t, 81-3, g.Remaining()+len(after.Cards), "exactly the claimed set left play")

	for _, c := range set {
		assert.NotContains(t, after.Cards, c, "claimed card %q still in play", c)
	}

	_, ok = findSet(after.Cards)
	assert.True(t, ok, "the refilled board must contain a set")

	last := after.Feed[len(after.Feed)-1]
	assert.Equal(t, game.FeedSet, last.Kind)

	// The same triple again is gone from the board.
	assert.Equal(t, game.OutcomeNotOnBoard, g.EvaluateSet("owner", set))
}

func TestLateJoinerScoreSeededOnFirstPlay(t *testing.T) {
	g := game.NewSeeded("g1", "owner", "friday night", 7)
	g.AddMember("owner")
	require.True(t, g.Start("owner"))

	g.AddMember("late")
	_, ok := g.Detail().Scores["late"]
	assert.False(t, ok, "joining alone does not create a score entry")

	triple, ok := findNonSet(g.Detail().Cards)
	require.True(t, ok)
	assert.Equal(t, game.OutcomeInvalid, g.EvaluateSet("late", triple))
	assert.Equal(t, -1, g.Detail().Scores["late"])
}

func TestScorePreservedAcrossRejoin(t *testing.T) {
	g := newStartedGame(t)

	set, ok := findSet(g.Detail().Cards)
	require.True(t, ok)
	require.Equal(t, game.OutcomeValidContinue, g.EvaluateSet("p2", set))

	require.True(t, g.RemoveMember("p2"))
	assert.Equal(t, 1, g.Detail().Scores["p2"], "score entries survive a leave")

	g.AddMember("p2")
	assert.Equal(t, 1, g.Detail().Scores["p2"], "rejoining preserves the score")
}

func TestPlayToCompletion(t *testing.T) {
	g := newStartedGame(t)

	claims := 0
	for {
		board := g.Detail().Cards
		set, ok := findSet(board)
		require.True(t, ok, "an unfinished game must always offer a set")

		outcome := g.EvaluateSet("owner", set)
		claims++
		require.LessOrEqual(t, claims, 27, "more claims than the deck can supply")

		if outcome == game.OutcomeValidFinished {
			break
		}
		require.Equal(t, game.OutcomeValidContinue, outcome)
	}

	d := g.Detail()
	assert.True(t, d.Finished)
	assert.Equal(t, 0, g.Remaining(), "the game only finishes once the deck is empty")
	assert.Equal(t, claims, d.Scores["owner"])
	assert.Equal(t, 81-3*claims, len(d.Cards))

	_, ok := findSet(d.Cards)
	assert.False(t, ok, "no set may remain after the game finishes")
}
