package game

import "time"

// Side is the canonical player slot. External naming ("left"/"right" in lobby
// payloads) is normalized to this pair at the gateway and never re-derived.
type Side int

const (
	SideTop    Side = 0
	SideBottom Side = 1
)

func (s Side) String() string {
	if s == SideTop {
		return "top"
	}
	return "bottom"
}

// LobbyLabel is the presentation name used in lobby payloads.
func (s Side) LobbyLabel() string {
	if s == SideTop {
		return "left"
	}
	return "right"
}

func (s Side) Opponent() Side {
	return 1 - s
}

// ParseSide accepts both naming schemes from clients.
func ParseSide(name string) (Side, bool) {
	switch name {
	case "top", "left":
		return SideTop, true
	case "bottom", "right":
		return SideBottom, true
	}
	return 0, false
}

// SkillDefinition is supplied by the skill store, immutable during a match.
// Multiplier skills (NarrowRatio == 0) scale ball velocity on the owner's next
// paddle collision. Narrowing skills shrink the owner's goal mouth for Duration.
type SkillDefinition struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Multiplier  float64       `json:"multiplier"`
	Cooldown    time.Duration `json:"-"`
	NarrowRatio float64       `json:"narrow_ratio,omitempty"`
	Duration    time.Duration `json:"-"`
}

func (d SkillDefinition) IsNarrowing() bool {
	return d.NarrowRatio > 0
}
