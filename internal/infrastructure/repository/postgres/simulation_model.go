package postgres

import (
	"time"

	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/domain/simulation"
)

type simulationModel struct {
	ID             string    `db:"id"`
	Engine         string    `db:"engine"`
	Seed           *int64    `db:"seed"`
	HomeScore      int       `db:"home_score"`
	AwayScore      int       `db:"away_score"`
	OvertimeRounds int       `db:"overtime_rounds"`
	Tiebreak       string    `db:"tiebreak"`
	Detail         []byte    `db:"detail"`
	CreatedAt      time.Time `db:"created_at"`
}

func toSimulationModel(rec simulation.Record) simulationModel {
	return simulationModel{
		ID:             rec.ID,
		Engine:         string(rec.Engine),
		Seed:           rec.Seed,
		HomeScore:      rec.HomeScore,
		AwayScore:      rec.AwayScore,
		OvertimeRounds: rec.OvertimeRounds,
		Tiebreak:       string(rec.Tiebreak),
		Detail:         rec.Detail,
		CreatedAt:      rec.CreatedAt,
	}
}

func (m simulationModel) toDomain() simulation.Record {
	return simulation.Record{
		ID:             m.ID,
		Engine:         engine.Kind(m.Engine),
		Seed:           m.Seed,
		HomeScore:      m.HomeScore,
		AwayScore:      m.AwayScore,
		OvertimeRounds: m.OvertimeRounds,
		Tiebreak:       engine.Tiebreak(m.Tiebreak),
		Detail:         m.Detail,
		CreatedAt:      m.CreatedAt,
	}
}
