package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/platform/cache"
	"github.com/scorecastlab/scorecast/internal/platform/logging"
)

func driveBatchFixture(seed *int64, runs int) DriveBatchInput {
	return DriveBatchInput{
		Home:   engine.DriveStats{OffensePointsPerDrive: 2.5, DefensePointsPerDrive: 2.2},
		Away:   engine.DriveStats{OffensePointsPerDrive: 2.3, DefensePointsPerDrive: 2.4},
		Config: engine.DriveConfig{Seed: seed},
		Runs:   runs,
	}
}

func TestBatchService_RunDriveBatch_SeededDeterministic(t *testing.T) {
	service := NewBatchService(1000, 8, nil, logging.NewNop())

	first, err := service.RunDriveBatch(t.Context(), driveBatchFixture(int64Ptr(42), 200))
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	second, err := service.RunDriveBatch(t.Context(), driveBatchFixture(int64Ptr(42), 200))
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}

	if first != second {
		t.Fatalf("seeded batches diverged:\n%+v\n%+v", first, second)
	}
	if first.Runs != 200 || !first.Seeded {
		t.Fatalf("unexpected summary header: %+v", first)
	}
	if first.HomeWins+first.AwayWins+first.Ties != first.Runs {
		t.Fatalf("outcome counts do not sum to runs: %+v", first)
	}
	if first.HomeWinPct+first.AwayWinPct+first.TiePct < 0.999 {
		t.Fatalf("percentages do not sum to one: %+v", first)
	}
	if first.AvgHomeScore <= 0 || first.AvgAwayScore <= 0 {
		t.Fatalf("average scores missing: %+v", first)
	}
}

func TestBatchService_RunProjectionBatch(t *testing.T) {
	service := NewBatchService(1000, 8, nil, logging.NewNop())

	summary, err := service.RunProjectionBatch(t.Context(), ProjectionBatchInput{
		Home:   engine.ProjectionStats{PointsPerGame: 24.6, PointsAllowedPerGame: 20.9, YardsPerPlay: 5.9, TurnoverRate: 1.1},
		Away:   engine.ProjectionStats{PointsPerGame: 21.3, PointsAllowedPerGame: 23.8, YardsPerPlay: 5.1, TurnoverRate: 1.6},
		Config: engine.ProjectionConfig{Seed: int64Ptr(7)},
		Runs:   150,
	})
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}

	if summary.Runs != 150 {
		t.Fatalf("unexpected runs: %d", summary.Runs)
	}
	// Projection defaults disallow ties, so every game has a winner.
	if summary.Ties != 0 {
		t.Fatalf("ties recorded with ties disallowed: %+v", summary)
	}
	if summary.HomeWins+summary.AwayWins != summary.Runs {
		t.Fatalf("wins do not sum to runs: %+v", summary)
	}
}

func TestBatchService_RunDriveBatch_AllowTiesCounted(t *testing.T) {
	service := NewBatchService(1000, 8, nil, logging.NewNop())

	in := driveBatchFixture(int64Ptr(9), 300)
	in.Home = engine.DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: 2.0}
	in.Away = engine.DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: 2.0}
	in.Config.AllowTies = boolPtr(true)

	summary, err := service.RunDriveBatch(t.Context(), in)
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if summary.Ties == 0 {
		t.Fatalf("evenly matched teams over 300 games should tie at least once")
	}
}

func TestBatchService_DefaultsAndLimits(t *testing.T) {
	service := NewBatchService(500, 4, nil, logging.NewNop())

	t.Run("zero runs takes default", func(t *testing.T) {
		summary, err := service.RunDriveBatch(t.Context(), driveBatchFixture(int64Ptr(1), 0))
		if err != nil {
			t.Fatalf("run batch: %v", err)
		}
		if summary.Runs != 100 {
			t.Fatalf("unexpected default runs: %d", summary.Runs)
		}
	})

	t.Run("negative runs rejected", func(t *testing.T) {
		_, err := service.RunDriveBatch(t.Context(), driveBatchFixture(int64Ptr(1), -1))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("runs above cap rejected", func(t *testing.T) {
		_, err := service.RunDriveBatch(t.Context(), driveBatchFixture(int64Ptr(1), 501))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("invalid stats surface engine error", func(t *testing.T) {
		in := driveBatchFixture(int64Ptr(1), 10)
		in.Home.OffensePointsPerDrive = 0
		_, err := service.RunDriveBatch(t.Context(), in)
		if !errors.Is(err, engine.ErrInvalidInput) {
			t.Fatalf("expected engine.ErrInvalidInput, got %v", err)
		}
	})
}

func TestBatchService_SeededBatchesCached(t *testing.T) {
	store := cache.NewStore(time.Minute)
	service := NewBatchService(1000, 8, store, logging.NewNop())

	in := driveBatchFixture(int64Ptr(77), 50)

	first, err := service.RunDriveBatch(t.Context(), in)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := service.RunDriveBatch(t.Context(), in)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Fatalf("cached summary diverged")
	}

	key := batchKey(engine.KindDrive, in, true)
	if key == "" {
		t.Fatalf("seeded batch produced empty cache key")
	}
	if _, ok := store.Get(t.Context(), key); !ok {
		t.Fatalf("summary not cached under %q", key)
	}
}

func TestBatchService_UnseededBatchesBypassCache(t *testing.T) {
	store := cache.NewStore(time.Minute)
	service := NewBatchService(1000, 8, store, logging.NewNop())

	if key := batchKey(engine.KindDrive, driveBatchFixture(nil, 50), false); key != "" {
		t.Fatalf("unseeded batch must not build a cache key, got %q", key)
	}

	summary, err := service.RunDriveBatch(t.Context(), driveBatchFixture(nil, 50))
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if summary.Seeded {
		t.Fatalf("summary marked seeded without a seed")
	}
}

func TestBatchService_ConcurrentSeededRuns(t *testing.T) {
	store := cache.NewStore(time.Minute)
	service := NewBatchService(1000, 8, store, logging.NewNop())

	in := driveBatchFixture(int64Ptr(5), 100)

	var wg sync.WaitGroup
	results := make([]BatchSummary, 8)
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = service.RunDriveBatch(t.Context(), in)
		}()
	}
	wg.Wait()

	for i := 1; i < 8; i++ {
		if errs[i] != nil {
			t.Fatalf("run %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("concurrent seeded runs diverged at %d", i)
		}
	}
}
