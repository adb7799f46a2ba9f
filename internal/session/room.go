package session

import (
	"sync"

	"airhockey/internal/game"
	"airhockey/internal/types"
	"airhockey/internal/utils"
)

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseActive
)

// seat is one side's slot: who sits there, their readiness, and the skill
// loadout snapshotted from the store at join time.
type seat struct {
	client   *types.Client
	username string
	ready    bool
	skills   []game.SkillDefinition
}

// Room spans the lobby and active-play phases of one match. All per-room
// mutation goes through its mutex; the active match itself is owned by the
// match runner goroutine.
type Room struct {
	mu    sync.Mutex
	Name  string
	Owner string

	phase Phase
	seats [2]seat
	match *game.Match
}

func newRoom(name, owner string) *Room {
	return &Room{Name: name, Owner: owner}
}

func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) Occupancy() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupancyLocked()
}

func (r *Room) occupancyLocked() int {
	n := 0
	for _, s := range r.seats {
		if s.client != nil {
			n++
		}
	}
	return n
}

// Join seats a participant on the first unassigned side, top before bottom.
func (r *Room) Join(c *types.Client, username string, skills []game.SkillDefinition) (game.Side, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for side := game.SideTop; side <= game.SideBottom; side++ {
		if r.seats[side].client == nil {
			r.seats[side] = seat{client: c, username: username, skills: skills}
			return side, nil
		}
	}
	return 0, ErrRoomFull
}

// ToggleReady flips one side's readiness. bothReady goes true exactly when the
// second flag comes up, which is the start transition signal. Once the room is
// active the signal never re-fires, whatever the flags do.
func (r *Room) ToggleReady(side game.Side) (ready, bothReady bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seats[side].client == nil {
		return false, false
	}
	r.seats[side].ready = !r.seats[side].ready
	bothReady = r.phase == PhaseLobby &&
		r.seats[game.SideTop].ready && r.seats[game.SideBottom].ready
	return r.seats[side].ready, bothReady
}

// Leave clears one side. The room survives while the other side remains.
// wasFull reports whether the room had both sides before this leave, which is
// when the external "playing" flag has to be reverted. Emptying the room also
// halts any running match: the runner must not outlive its participants.
func (r *Room) Leave(side game.Side) (remaining int, wasFull bool) {
	r.mu.Lock()
	wasFull = r.occupancyLocked() == 2
	r.seats[side] = seat{}
	remaining = r.occupancyLocked()

	var m *game.Match
	if remaining == 0 && r.match != nil {
		m = r.match
		r.match = nil
	}
	r.mu.Unlock()

	if m != nil {
		m.Stop()
	}
	return remaining, wasFull
}

// StartMatch moves the room to the active phase and launches its runner.
// No-op (returning the existing match) if already active.
func (r *Room) StartMatch(onFinish func(topScore, bottomScore int)) *game.Match {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.match != nil {
		return r.match
	}
	r.phase = PhaseActive
	r.match = game.NewMatch(r.Name, r.seats[game.SideTop].skills, r.seats[game.SideBottom].skills, r, onFinish)
	r.match.Start()
	return r.match
}

func (r *Room) Match() *game.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.match
}

// StopMatch halts the runner and returns the room to a dead state prior to
// registry removal.
func (r *Room) StopMatch() {
	r.mu.Lock()
	m := r.match
	r.match = nil
	r.mu.Unlock()

	if m != nil {
		m.Stop()
	}
}

// Broadcast sends one event to every seated participant. Satisfies
// game.Broadcaster, so the match runner fans its per-tick snapshots out
// through the room.
func (r *Room) Broadcast(event string, data any) {
	for _, c := range r.Clients() {
		utils.SendMessage(c.Send, event, event, data)
	}
}

func (r *Room) Clients() []*types.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*types.Client, 0, 2)
	for _, s := range r.seats {
		if s.client != nil {
			out = append(out, s.client)
		}
	}
	return out
}

// SideOf finds the seated side for a client, if any.
func (r *Room) SideOf(c *types.Client) (game.Side, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for side := game.SideTop; side <= game.SideBottom; side++ {
		if r.seats[side].client == c {
			return side, true
		}
	}
	return 0, false
}

// LobbySnapshot is the lobby payload broadcast on every membership or
// readiness change. Presentation naming is left/right; top maps to left.
type LobbySnapshot struct {
	RoomName        string                 `json:"room_name"`
	LeftUsername    string                 `json:"left_username"`
	RightUsername   string                 `json:"right_username"`
	LeftReady       bool                   `json:"left_ready"`
	RightReady      bool                   `json:"right_ready"`
	LeftUserSkills  []game.SkillDefinition `json:"left_user_skills"`
	RightUserSkills []game.SkillDefinition `json:"right_user_skills"`
}

func (r *Room) Snapshot() LobbySnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	left := r.seats[game.SideTop]
	right := r.seats[game.SideBottom]

	snap := LobbySnapshot{
		RoomName:        r.Name,
		LeftUsername:    left.username,
		RightUsername:   right.username,
		LeftReady:       left.ready,
		RightReady:      right.ready,
		LeftUserSkills:  left.skills,
		RightUserSkills: right.skills,
	}
	if snap.LeftUsername == "" {
		snap.LeftUsername = "waiting"
	}
	if snap.RightUsername == "" {
		snap.RightUsername = "waiting"
	}
	return snap
}
