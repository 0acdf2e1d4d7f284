package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/platform/cache"
	"github.com/scorecastlab/scorecast/internal/platform/logging"
)

const (
	defaultBatchRuns    = 100
	defaultBatchWorkers = 4
)

// BatchService runs Monte Carlo batches: many independent games over the same
// inputs, aggregated into a win/score summary. Seeded batches derive run i's
// seed as base+i, which makes the whole summary deterministic and cacheable;
// unseeded batches draw from the system source and bypass the cache.
type BatchService struct {
	maxRuns    int
	maxWorkers int
	cache      *cache.Store
	logger     *logging.Logger
}

func NewBatchService(maxRuns, maxWorkers int, store *cache.Store, logger *logging.Logger) *BatchService {
	if maxRuns <= 0 {
		maxRuns = defaultBatchRuns
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultBatchWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BatchService{
		maxRuns:    maxRuns,
		maxWorkers: maxWorkers,
		cache:      store,
		logger:     logger,
	}
}

// BatchSummary aggregates one Monte Carlo batch.
type BatchSummary struct {
	Runs          int     `json:"runs"`
	HomeWins      int     `json:"homeWins"`
	AwayWins      int     `json:"awayWins"`
	Ties          int     `json:"ties"`
	HomeWinPct    float64 `json:"homeWinPct"`
	AwayWinPct    float64 `json:"awayWinPct"`
	TiePct        float64 `json:"tiePct"`
	AvgHomeScore  float64 `json:"avgHomeScore"`
	AvgAwayScore  float64 `json:"avgAwayScore"`
	OvertimeGames int     `json:"overtimeGames"`
	TiebreakGames int     `json:"tiebreakGames"`
	Seeded        bool    `json:"seeded"`
}

type DriveBatchInput struct {
	Home   engine.DriveStats
	Away   engine.DriveStats
	Config engine.DriveConfig // Seed, when set, is the batch base seed
	Runs   int
	// MaxWorkers caps pool size for this batch; 0 takes the service default.
	MaxWorkers int
}

type ProjectionBatchInput struct {
	Home       engine.ProjectionStats
	Away       engine.ProjectionStats
	Config     engine.ProjectionConfig
	Runs       int
	MaxWorkers int
}

type runOutcome struct {
	homeScore int
	awayScore int
	overtime  bool
	tiebreak  bool
}

func (s *BatchService) RunDriveBatch(ctx context.Context, in DriveBatchInput) (BatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.RunDriveBatch")
	defer span.End()

	runs, workers, err := s.resolveBatchSize(in.Runs, in.MaxWorkers)
	if err != nil {
		return BatchSummary{}, err
	}

	run := func(i int) (runOutcome, error) {
		cfg := in.Config
		if in.Config.Seed != nil {
			seed := *in.Config.Seed + int64(i)
			cfg.Seed = &seed
		}
		res, runErr := engine.SimulateDriveGame(in.Home, in.Away, cfg)
		if runErr != nil {
			return runOutcome{}, runErr
		}
		return runOutcome{
			homeScore: res.HomeScore,
			awayScore: res.AwayScore,
			overtime:  res.Overtime != nil && res.Overtime.Rounds > 0,
			tiebreak:  res.Overtime != nil && res.Overtime.Tiebreak != engine.TiebreakNone,
		}, nil
	}

	return s.runCached(ctx, batchKey(engine.KindDrive, in, in.Config.Seed != nil), in.Config.Seed != nil, runs, workers, run)
}

func (s *BatchService) RunProjectionBatch(ctx context.Context, in ProjectionBatchInput) (BatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.RunProjectionBatch")
	defer span.End()

	runs, workers, err := s.resolveBatchSize(in.Runs, in.MaxWorkers)
	if err != nil {
		return BatchSummary{}, err
	}

	run := func(i int) (runOutcome, error) {
		cfg := in.Config
		if in.Config.Seed != nil {
			seed := *in.Config.Seed + int64(i)
			cfg.Seed = &seed
		}
		res, runErr := engine.SimulateProjectionGame(in.Home, in.Away, cfg)
		if runErr != nil {
			return runOutcome{}, runErr
		}
		return runOutcome{
			homeScore: res.HomeScore,
			awayScore: res.AwayScore,
			overtime:  res.Overtime != nil && res.Overtime.Rounds > 0,
			tiebreak:  res.Overtime != nil && res.Overtime.Tiebreak != engine.TiebreakNone,
		}, nil
	}

	return s.runCached(ctx, batchKey(engine.KindProjection, in, in.Config.Seed != nil), in.Config.Seed != nil, runs, workers, run)
}

func (s *BatchService) resolveBatchSize(runs, workers int) (int, int, error) {
	if runs == 0 {
		runs = defaultBatchRuns
	}
	if runs < 0 {
		return 0, 0, fmt.Errorf("%w: batch runs must be greater than zero", ErrInvalidInput)
	}
	if runs > s.maxRuns {
		return 0, 0, fmt.Errorf("%w: batch runs must not exceed %d", ErrInvalidInput, s.maxRuns)
	}

	if workers <= 0 || workers > s.maxWorkers {
		workers = s.maxWorkers
	}
	if workers > runs {
		workers = runs
	}

	return runs, workers, nil
}

func (s *BatchService) runCached(ctx context.Context, key string, seeded bool, runs, workers int, run func(int) (runOutcome, error)) (BatchSummary, error) {
	compute := func(ctx context.Context) (any, error) {
		return s.runBatch(ctx, seeded, runs, workers, run)
	}

	if s.cache == nil || !seeded {
		out, err := compute(ctx)
		if err != nil {
			return BatchSummary{}, err
		}
		return out.(BatchSummary), nil
	}

	out, err := s.cache.GetOrLoad(ctx, key, compute)
	if err != nil {
		return BatchSummary{}, err
	}
	return out.(BatchSummary), nil
}

func (s *BatchService) runBatch(ctx context.Context, seeded bool, runs, workers int, run func(int) (runOutcome, error)) (BatchSummary, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]runOutcome, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		i := i
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			outcomes[i], errs[i] = run(i)
		}); submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit batch run: %w", submitErr)
		}
	}
	wg.Wait()

	for _, runErr := range errs {
		if runErr != nil {
			return BatchSummary{}, runErr
		}
	}

	summary := BatchSummary{Runs: runs, Seeded: seeded}
	var homeTotal, awayTotal int
	for _, o := range outcomes {
		homeTotal += o.homeScore
		awayTotal += o.awayScore
		switch {
		case o.homeScore > o.awayScore:
			summary.HomeWins++
		case o.awayScore > o.homeScore:
			summary.AwayWins++
		default:
			summary.Ties++
		}
		if o.overtime {
			summary.OvertimeGames++
		}
		if o.tiebreak {
			summary.TiebreakGames++
		}
	}

	n := float64(runs)
	summary.HomeWinPct = float64(summary.HomeWins) / n
	summary.AwayWinPct = float64(summary.AwayWins) / n
	summary.TiePct = float64(summary.Ties) / n
	summary.AvgHomeScore = float64(homeTotal) / n
	summary.AvgAwayScore = float64(awayTotal) / n

	s.logger.InfoContext(ctx, "batch simulation finished",
		"runs", runs,
		"workers", workers,
		"seeded", seeded,
		"home_win_pct", summary.HomeWinPct,
	)

	return summary, nil
}

// batchKey builds a cache key from the full batch input. JSON flattens the
// config pointers to their values, so identical inputs share a key regardless
// of allocation. Unseeded batches return an empty key and are never cached.
func batchKey(kind engine.Kind, input any, seeded bool) string {
	if !seeded {
		return ""
	}
	raw, err := sonic.Marshal(input)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(kind))
	_, _ = h.Write(raw)
	return fmt.Sprintf("batch:%s:%x", kind, h.Sum64())
}
