package game_test

import (
	"testing"

	"airhockey/internal/game"

	"github.com/stretchr/testify/assert"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in     string
		want   game.Side
		wantOK bool
	}{
		{"top", game.SideTop, true},
		{"left", game.SideTop, true},
		{"bottom", game.SideBottom, true},
		{"right", game.SideBottom, true},
		{"middle", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := game.ParseSide(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSideNaming(t *testing.T) {
	assert.Equal(t, "top", game.SideTop.String())
	assert.Equal(t, "bottom", game.SideBottom.String())
	assert.Equal(t, "left", game.SideTop.LobbyLabel())
	assert.Equal(t, "right", game.SideBottom.LobbyLabel())
	assert.Equal(t, game.SideBottom, game.SideTop.Opponent())
	assert.Equal(t, game.SideTop, game.SideBottom.Opponent())
}
