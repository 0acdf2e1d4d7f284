package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/domain/simulation"
)

type SimulationRepository struct {
	db *sqlx.DB
}

func NewSimulationRepository(db *sqlx.DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

func (r *SimulationRepository) Insert(ctx context.Context, rec simulation.Record) error {
	const query = `
INSERT INTO simulations (id, engine, seed, home_score, away_score, overtime_rounds, tiebreak, detail, created_at)
VALUES (:id, :engine, :seed, :home_score, :away_score, :overtime_rounds, :tiebreak, :detail, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, toSimulationModel(rec)); err != nil {
		return crerr.Wrapf(err, "insert simulation %s", rec.ID)
	}

	return nil
}

func (r *SimulationRepository) GetByID(ctx context.Context, id string) (simulation.Record, bool, error) {
	const query = `
SELECT id, engine, seed, home_score, away_score, overtime_rounds, tiebreak, detail, created_at
FROM simulations
WHERE id = $1`

	var m simulationModel
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if isNotFound(err) {
			return simulation.Record{}, false, nil
		}
		return simulation.Record{}, false, crerr.Wrapf(err, "get simulation %s", id)
	}

	return m.toDomain(), true, nil
}

func (r *SimulationRepository) ListRecent(ctx context.Context, kind engine.Kind, limit int) ([]simulation.Record, error) {
	const baseQuery = `
SELECT id, engine, seed, home_score, away_score, overtime_rounds, tiebreak, detail, created_at
FROM simulations`

	var models []simulationModel
	var err error
	if kind == "" {
		err = r.db.SelectContext(ctx, &models, baseQuery+` ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	} else {
		err = r.db.SelectContext(ctx, &models, baseQuery+` WHERE engine = $1 ORDER BY created_at DESC, id DESC LIMIT $2`, string(kind), limit)
	}
	if err != nil {
		return nil, crerr.Wrap(err, "list simulations")
	}

	out := make([]simulation.Record, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}

	return out, nil
}
