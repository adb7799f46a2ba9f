package session

import (
	"errors"
	"sync"

	"airhockey/internal/types"
)

var (
	ErrDuplicateRoomName = errors.New("duplicate room name")
	ErrRoomFull          = errors.New("room full")
)

// Registry is the shared index of rooms plus the set of connected clients.
// Structural changes (insert/remove of rooms, client churn) are guarded here;
// everything inside a room is serialized by that room.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	clients map[*types.Client]bool
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		clients: make(map[*types.Client]bool),
	}
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default is the process-wide registry used by the gateway handlers.
func Default() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// CreateRoom inserts a new empty lobby room. Names are compared exactly,
// case-sensitive.
func (r *Registry) CreateRoom(name, owner string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[name]; exists {
		return nil, ErrDuplicateRoomName
	}
	room := newRoom(name, owner)
	r.rooms[name] = room
	return room, nil
}

func (r *Registry) Get(name string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[name]
	return room, ok
}

// RemoveIfEmpty tears a room out of the index once nobody is seated in it.
func (r *Registry) RemoveIfEmpty(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if !ok || room.Occupancy() > 0 {
		return false
	}
	delete(r.rooms, name)
	return true
}

func (r *Registry) AddClient(c *types.Client) {
	r.mu.Lock()
	r.clients[c] = true
	r.mu.Unlock()
}

func (r *Registry) RemoveClient(c *types.Client) {
	r.mu.Lock()
	delete(r.clients, c)
	r.mu.Unlock()
}

// EachClient visits every connected client, for registry-wide broadcasts such
// as room-list updates.
func (r *Registry) EachClient(fn func(c *types.Client)) {
	r.mu.RLock()
	snapshot := make([]*types.Client, 0, len(r.clients))
	for c := range r.clients {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		fn(c)
	}
}

func (r *Registry) IsUserLoggedIn(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for c := range r.clients {
		if c.User.ID == id && c.User.ID != 0 {
			return true
		}
	}
	return false
}
