package usecase

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/domain/simulation"
	idgen "github.com/scorecastlab/scorecast/internal/platform/id"
	"github.com/scorecastlab/scorecast/internal/platform/logging"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// SimulationService runs single games through either engine variant and keeps
// a queryable record of every run. The engines stay pure; all persistence and
// logging happens here.
type SimulationService struct {
	repo   simulation.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewSimulationService(repo simulation.Repository, gen idgen.Generator, logger *logging.Logger) *SimulationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SimulationService{
		repo:   repo,
		idGen:  gen,
		logger: logger,
		now:    time.Now,
	}
}

type DriveGameInput struct {
	Home   engine.DriveStats
	Away   engine.DriveStats
	Config engine.DriveConfig
}

type DriveGameOutput struct {
	Record simulation.Record
	Result engine.DriveGameResult
}

func (s *SimulationService) RunDriveGame(ctx context.Context, in DriveGameInput) (DriveGameOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.RunDriveGame")
	defer span.End()

	result, err := engine.SimulateDriveGame(in.Home, in.Away, in.Config)
	if err != nil {
		return DriveGameOutput{}, err
	}

	rec, err := s.store(ctx, engine.KindDrive, in.Config.Seed, result.HomeScore, result.AwayScore, result.Overtime, result)
	if err != nil {
		return DriveGameOutput{}, err
	}

	return DriveGameOutput{Record: rec, Result: result}, nil
}

type ProjectionGameInput struct {
	Home   engine.ProjectionStats
	Away   engine.ProjectionStats
	Config engine.ProjectionConfig
}

type ProjectionGameOutput struct {
	Record simulation.Record
	Result engine.ProjectionGameResult
}

func (s *SimulationService) RunProjectionGame(ctx context.Context, in ProjectionGameInput) (ProjectionGameOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.RunProjectionGame")
	defer span.End()

	result, err := engine.SimulateProjectionGame(in.Home, in.Away, in.Config)
	if err != nil {
		return ProjectionGameOutput{}, err
	}

	rec, err := s.store(ctx, engine.KindProjection, in.Config.Seed, result.HomeScore, result.AwayScore, result.Overtime, result)
	if err != nil {
		return ProjectionGameOutput{}, err
	}

	return ProjectionGameOutput{Record: rec, Result: result}, nil
}

func (s *SimulationService) store(ctx context.Context, kind engine.Kind, seed *int64, homeScore, awayScore int, ot *engine.Overtime, detail any) (simulation.Record, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return simulation.Record{}, fmt.Errorf("generate simulation id: %w", err)
	}

	payload, err := sonic.Marshal(detail)
	if err != nil {
		return simulation.Record{}, fmt.Errorf("marshal simulation detail: %w", err)
	}

	rec := simulation.Record{
		ID:        id,
		Engine:    kind,
		Seed:      seed,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Tiebreak:  engine.TiebreakNone,
		Detail:    payload,
		CreatedAt: s.now().UTC(),
	}
	if ot != nil {
		rec.OvertimeRounds = ot.Rounds
		rec.Tiebreak = ot.Tiebreak
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return simulation.Record{}, fmt.Errorf("insert simulation record: %w", err)
	}

	s.logger.InfoContext(ctx, "simulation stored",
		"simulation_id", rec.ID,
		"engine", string(kind),
		"home_score", homeScore,
		"away_score", awayScore,
		"overtime_rounds", rec.OvertimeRounds,
	)

	return rec, nil
}

func (s *SimulationService) Get(ctx context.Context, id string) (simulation.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.Get")
	defer span.End()

	if id == "" {
		return simulation.Record{}, fmt.Errorf("%w: simulation id is required", ErrInvalidInput)
	}

	rec, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return simulation.Record{}, fmt.Errorf("get simulation %s: %w", id, err)
	}
	if !ok {
		return simulation.Record{}, fmt.Errorf("%w: simulation %s", ErrNotFound, id)
	}

	return rec, nil
}

func (s *SimulationService) ListRecent(ctx context.Context, kind engine.Kind, limit int) ([]simulation.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.ListRecent")
	defer span.End()

	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown engine %q", ErrInvalidInput, string(kind))
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.repo.ListRecent(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}

	return records, nil
}
