package game

import (
	"sync"
	"sync/atomic"
	"time"

	"airhockey/internal/logger"

	"github.com/google/uuid"
)

// ServeDelay separates a goal from the follow-up serve.
var ServeDelay = time.Second

// Broadcaster fans a room event out to that room's participants. The session
// gateway supplies the implementation.
type Broadcaster interface {
	Broadcast(event string, data any)
}

type intentKind int

const (
	intentMove intentKind = iota
	intentPlace
	intentSelect
	intentActivate
	intentServe
)

type intent struct {
	kind    intentKind
	side    Side
	dx, dy  float64
	x, y    float64
	skillID int
	dir     float64
	gen     uint64
	reply   func(error)
}

// Match drives one room's simulation. All state mutation happens on the run
// goroutine: inbound intents are queued, never applied from the caller.
type Match struct {
	Room string
	ID   string

	state   *MatchState
	bc      Broadcaster
	intents chan intent
	stop    chan struct{}
	stopped sync.Once

	// Serve continuations carry the generation they were scheduled under; a
	// stale one from a torn-down room is a no-op.
	gen     atomic.Uint64
	timerMu sync.Mutex
	timer   *time.Timer

	onFinish func(topScore, bottomScore int)
}

func NewMatch(room string, top, bottom []SkillDefinition, bc Broadcaster, onFinish func(topScore, bottomScore int)) *Match {
	return &Match{
		Room:     room,
		ID:       uuid.NewString(),
		state:    NewMatchState(top, bottom, nil),
		bc:       bc,
		intents:  make(chan intent, 256),
		stop:     make(chan struct{}),
		onFinish: onFinish,
	}
}

// Start launches the run loop. Each match runs independently; a slow room
// never delays another.
func (m *Match) Start() {
	go m.run()
}

func (m *Match) run() {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("match %s (%s): tick panic: %v", m.Room, m.ID, r)
		}
		if m.onFinish != nil {
			m.onFinish(m.state.Scores[SideTop], m.state.Scores[SideBottom])
		}
	}()

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case in := <-m.intents:
			m.apply(in, time.Now())
		case <-ticker.C:
			m.tick(time.Now())
		}
	}
}

func (m *Match) tick(now time.Time) {
	res := m.state.Step(now)

	for _, side := range res.Bounces {
		m.bc.Broadcast("bounce", map[string]any{"side": side.String()})
	}
	if res.Goal != nil {
		m.scheduleServe(res.Goal.ServeDir)
	}

	// The tick is not done until its snapshot is out; after a goal this is
	// the immediate zero-velocity broadcast.
	m.bc.Broadcast("state", m.state.Snapshot(now))
}

func (m *Match) scheduleServe(dir float64) {
	gen := m.gen.Load()
	m.timerMu.Lock()
	m.timer = time.AfterFunc(ServeDelay, func() {
		m.enqueue(intent{kind: intentServe, dir: dir, gen: gen})
	})
	m.timerMu.Unlock()
}

func (m *Match) apply(in intent, now time.Time) {
	switch in.kind {
	case intentMove:
		m.state.MovePaddle(in.side, in.dx, in.dy)
	case intentPlace:
		m.state.SetPaddle(in.side, in.x, in.y)
	case intentSelect:
		m.state.SelectSkill(in.side, in.skillID)
	case intentActivate:
		err := m.state.ActivateSkill(in.side, in.skillID, now)
		if err == nil {
			m.bc.Broadcast("skill_activated", map[string]any{
				"side":     in.side.String(),
				"skill_id": in.skillID,
			})
		}
		if in.reply != nil {
			in.reply(err)
		}
	case intentServe:
		if in.gen == m.gen.Load() {
			m.state.Serve(in.dir)
			m.bc.Broadcast("state", m.state.Snapshot(now))
		}
	}
}

// enqueue hands an intent to the run loop without blocking the caller. When
// the queue is saturated the intent is dropped: tick cadence wins.
func (m *Match) enqueue(in intent) {
	select {
	case m.intents <- in:
	default:
		logger.Log.Warnf("match %s: intent queue full, dropping", m.Room)
	}
}

func (m *Match) Move(side Side, dx, dy float64) {
	m.enqueue(intent{kind: intentMove, side: side, dx: dx, dy: dy})
}

func (m *Match) Place(side Side, x, y float64) {
	m.enqueue(intent{kind: intentPlace, side: side, x: x, y: y})
}

func (m *Match) Select(side Side, skillID int) {
	m.enqueue(intent{kind: intentSelect, side: side, skillID: skillID})
}

// Activate queues a skill activation; reply (optional) is invoked on the run
// goroutine with the outcome so the gateway can answer the requester.
func (m *Match) Activate(side Side, skillID int, reply func(error)) {
	m.enqueue(intent{kind: intentActivate, side: side, skillID: skillID, reply: reply})
}

// Stop tears the match down. Idempotent. A serve continuation scheduled before
// the stop will find a bumped generation and do nothing.
func (m *Match) Stop() {
	m.stopped.Do(func() {
		m.gen.Add(1)
		m.timerMu.Lock()
		if m.timer != nil {
			m.timer.Stop()
		}
		m.timerMu.Unlock()
		close(m.stop)
	})
}
