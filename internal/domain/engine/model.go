package engine

// Kind selects one of the two simulation strategies. The strategies share the
// overtime result shape but are otherwise independent models over different
// team statistics.
type Kind string

const (
	KindDrive      Kind = "drive"
	KindProjection Kind = "projection"
)

func (k Kind) Valid() bool {
	return k == KindDrive || k == KindProjection
}

// Tiebreak names the rule that decided (or did not decide) a tied game.
type Tiebreak string

const (
	TiebreakNone     Tiebreak = "none"
	TiebreakExpected Tiebreak = "expected"
	TiebreakHome     Tiebreak = "home"
)

// Overtime records extra play after a regulation tie. HomePoints and
// AwayPoints hold one entry per round in play order. Tiebreak is TiebreakNone
// unless a forced deciding point was awarded after the round cap.
type Overtime struct {
	Rounds     int      `json:"rounds"`
	HomePoints []int    `json:"homePoints"`
	AwayPoints []int    `json:"awayPoints"`
	Tiebreak   Tiebreak `json:"tiebreak"`
}
