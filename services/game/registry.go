package game

import (
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry owns the id -> game map. It only guards the map itself; each game
// serializes its own mutations.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*Game)}
}

// Create constructs a game owned by ownerID, stores it and seats the owner.
func (r *Registry) Create(ownerID, name string) *Game {
	g := New(uuid.NewString(), ownerID, name)

	r.mu.Lock()
	r.games[g.ID()] = g
	r.mu.Unlock()

	g.AddMember(ownerID)

	log.Printf("Created game %s (%q) for user %s", g.ID(), name, ownerID)
	return g
}

func (r *Registry) Get(id string) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	return g, ok
}

// Remove drops the game if it has no members left. A game that still has
// members is never destroyed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[id]
	if !ok {
		log.Printf("Cannot delete game %s - game does not exist", id)
		return false
	}
	if g.HasMembers() {
		log.Printf("Refusing to delete game %s - game still has members", id)
		return false
	}

	delete(r.games, id)
	log.Printf("Deleted game %s", id)
	return true
}

// All returns every registered game, oldest first.
func (r *Registry) All() []*Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Game, 0, len(r.games))
	for _, g := range r.games {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt().Equal(all[j].CreatedAt()) {
			return all[i].ID() < all[j].ID()
		}
		return all[i].CreatedAt().Before(all[j].CreatedAt())
	})
	return all
}
