package memory

import (
	"context"
	"sync"

	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/domain/simulation"
)

const defaultCapacity = 500

// SimulationRepository keeps the most recent records in memory, newest first.
// Once capacity is reached the oldest record is dropped on insert.
type SimulationRepository struct {
	mu       sync.RWMutex
	capacity int
	records  []simulation.Record
	byID     map[string]int
}

func NewSimulationRepository(capacity int) *SimulationRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &SimulationRepository{
		capacity: capacity,
		byID:     make(map[string]int),
	}
}

func (r *SimulationRepository) Insert(_ context.Context, rec simulation.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]simulation.Record{rec}, r.records...)
	if len(r.records) > r.capacity {
		r.records = r.records[:r.capacity]
	}

	r.byID = make(map[string]int, len(r.records))
	for i, item := range r.records {
		r.byID[item.ID] = i
	}

	return nil
}

func (r *SimulationRepository) GetByID(_ context.Context, id string) (simulation.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return simulation.Record{}, false, nil
	}

	return r.records[i], true, nil
}

func (r *SimulationRepository) ListRecent(_ context.Context, kind engine.Kind, limit int) ([]simulation.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]simulation.Record, 0, limit)
	for _, rec := range r.records {
		if kind != "" && rec.Engine != kind {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}
