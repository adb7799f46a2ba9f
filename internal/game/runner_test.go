package game_test

import (
	"sync"
	"testing"
	"time"

	"airhockey/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBroadcaster captures everything the runner emits.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	event string
	data  any
}

func (b *recordingBroadcaster) Broadcast(event string, data any) {
	b.mu.Lock()
	b.events = append(b.events, recordedEvent{event: event, data: data})
	b.mu.Unlock()
}

func (b *recordingBroadcaster) lastState() (map[string]any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].event == "state" {
			return b.events[i].data.(map[string]any), true
		}
	}
	return nil, false
}

func (b *recordingBroadcaster) count(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.event == event {
			n++
		}
	}
	return n
}

func TestMatchBroadcastsStateEveryTick(t *testing.T) {
	bc := &recordingBroadcaster{}
	m := game.NewMatch("test-room", testSkills(), testSkills(), bc, nil)
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool {
		return bc.count("state") >= 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMatchAppliesMoveIntent(t *testing.T) {
	bc := &recordingBroadcaster{}
	m := game.NewMatch("test-room", testSkills(), testSkills(), bc, nil)
	m.Start()
	defer m.Stop()

	m.Move(game.SideTop, 50, 0)

	require.Eventually(t, func() bool {
		snap, ok := bc.lastState()
		if !ok {
			return false
		}
		paddles := snap["paddles"].(map[string]game.Vec)
		return paddles["top"].X == game.Width/2+50
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMatchActivateReply(t *testing.T) {
	bc := &recordingBroadcaster{}
	m := game.NewMatch("test-room", testSkills(), testSkills(), bc, nil)
	m.Start()
	defer m.Stop()

	replies := make(chan error, 2)
	m.Activate(game.SideTop, 3, func(err error) { replies <- err })

	select {
	case err := <-replies:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from run loop")
	}

	// Immediate repeat trips the cooldown gate.
	m.Activate(game.SideTop, 3, func(err error) { replies <- err })
	select {
	case err := <-replies:
		assert.ErrorIs(t, err, game.ErrSkillCoolingDown)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from run loop")
	}

	require.Eventually(t, func() bool {
		return bc.count("skill_activated") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMatchFinishCallback(t *testing.T) {
	bc := &recordingBroadcaster{}
	done := make(chan [2]int, 1)
	m := game.NewMatch("test-room", testSkills(), testSkills(), bc, func(top, bottom int) {
		done <- [2]int{top, bottom}
	})
	m.Start()

	m.Stop()
	m.Stop() // idempotent

	select {
	case scores := <-done:
		assert.Equal(t, [2]int{0, 0}, scores)
	case <-time.After(2 * time.Second):
		t.Fatal("onFinish never ran")
	}
}
