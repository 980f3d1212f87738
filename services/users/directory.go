package users

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/goombaio/namegenerator"
)

// ErrAlreadyExists is returned when a connection id is registered twice.
var ErrAlreadyExists = errors.New("user already exists")

// User is one connected identity: the connection/session id it is bound to,
// a display nickname and the game it currently sits in ("" when idle).
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	GameID   string `json:"gameId,omitempty"`
}

// Directory owns the connection id -> user map.
type Directory struct {
	mu    sync.RWMutex
	users map[string]*User
	names namegenerator.Generator
}

func NewDirectory() *Directory {
	return &Directory{
		users: make(map[string]*User),
		names: namegenerator.NewNameGenerator(time.Now().UnixNano()),
	}
}

// Create registers a user for id. When nickname is empty a generated one is
// assigned. Fails with ErrAlreadyExists if id is already registered.
func (d *Directory) Create(id, nickname string) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[id]; ok {
		log.Printf("Cannot add user with id %s - user already exists", id)
		return User{}, ErrAlreadyExists
	}

	if nickname == "" {
		nickname = d.names.Generate()
	}

	u := &User{ID: id, Nickname: nickname}
	d.users[id] = u

	log.Printf("Created user %q", nickname)
	return *u, nil
}

// Delete removes the user bound to id. Returns false if there is none.
func (d *Directory) Delete(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		log.Printf("Cannot remove user with id %s - user does not exist", id)
		return false
	}

	delete(d.users, id)
	log.Printf("Deleted user %q", u.Nickname)
	return true
}

// Get returns a copy of the user bound to id.
func (d *Directory) Get(id string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// SetCurrentGame records which game the user sits in; pass "" when the user
// returns to the lobby. Returns false for unknown ids.
func (d *Directory) SetCurrentGame(id, gameID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return false
	}
	u.GameID = gameID
	return true
}

// IdleUsers returns every user with no current game, sorted by nickname.
// This is exactly the lobby roster.
func (d *Directory) IdleUsers() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idle := make([]User, 0, len(d.users))
	for _, u := range d.users {
		if u.GameID == "" {
			idle = append(idle, *u)
		}
	}
	sort.Slice(idle, func(i, j int) bool {
		if idle[i].Nickname == idle[j].Nickname {
			return idle[i].ID < idle[j].ID
		}
		return idle[i].Nickname < idle[j].Nickname
	})
	return idle
}
