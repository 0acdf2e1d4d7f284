package simulation

import (
	"time"

	"github.com/scorecastlab/scorecast/internal/domain/engine"
)

// Record is one stored simulation run: the summary columns queried by the
// history endpoints plus the full engine result as an opaque JSON payload.
type Record struct {
	ID             string
	Engine         engine.Kind
	Seed           *int64
	HomeScore      int
	AwayScore      int
	OvertimeRounds int
	Tiebreak       engine.Tiebreak
	Detail         []byte
	CreatedAt      time.Time
}

// Winner reports which side won, or "tie".
func (r Record) Winner() string {
	switch {
	case r.HomeScore > r.AwayScore:
		return "home"
	case r.AwayScore > r.HomeScore:
		return "away"
	default:
		return "tie"
	}
}
