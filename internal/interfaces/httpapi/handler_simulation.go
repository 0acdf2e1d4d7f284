package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/scorecastlab/scorecast/internal/domain/engine"
	"github.com/scorecastlab/scorecast/internal/usecase"
)

type driveTeamDTO struct {
	OffensePointsPerDrive float64 `json:"offensePointsPerDrive" validate:"required,gt=0"`
	DefensePointsPerDrive float64 `json:"defensePointsPerDrive" validate:"required,gt=0"`
}

func (d driveTeamDTO) toStats() engine.DriveStats {
	return engine.DriveStats{
		OffensePointsPerDrive: d.OffensePointsPerDrive,
		DefensePointsPerDrive: d.DefensePointsPerDrive,
	}
}

type driveOvertimeDTO struct {
	Enabled   *bool `json:"enabled"`
	MaxRounds *int  `json:"maxRounds" validate:"omitempty,gte=0"`
}

type simulateDriveRequest struct {
	Home          driveTeamDTO      `json:"home"`
	Away          driveTeamDTO      `json:"away"`
	Seed          *int64            `json:"seed"`
	DrivesPerTeam *int              `json:"drivesPerTeam" validate:"omitempty,gt=0"`
	AllowTies     *bool             `json:"allowTies"`
	Overtime      *driveOvertimeDTO `json:"overtime"`
}

func (req simulateDriveRequest) toInput() usecase.DriveGameInput {
	cfg := engine.DriveConfig{
		Seed:          req.Seed,
		DrivesPerTeam: req.DrivesPerTeam,
		AllowTies:     req.AllowTies,
	}
	if req.Overtime != nil {
		cfg.Overtime = &engine.DriveOvertimeConfig{
			Enabled:   req.Overtime.Enabled,
			MaxRounds: req.Overtime.MaxRounds,
		}
	}
	return usecase.DriveGameInput{
		Home:   req.Home.toStats(),
		Away:   req.Away.toStats(),
		Config: cfg,
	}
}

type projectionTeamDTO struct {
	PointsPerGame        float64 `json:"pointsPerGame" validate:"gte=0"`
	PointsAllowedPerGame float64 `json:"pointsAllowedPerGame" validate:"gte=0"`
	YardsPerPlay         float64 `json:"yardsPerPlay" validate:"required,gt=0"`
	TurnoverRate         float64 `json:"turnoverRate" validate:"gte=0"`
}

func (d projectionTeamDTO) toStats() engine.ProjectionStats {
	return engine.ProjectionStats{
		PointsPerGame:        d.PointsPerGame,
		PointsAllowedPerGame: d.PointsAllowedPerGame,
		YardsPerPlay:         d.YardsPerPlay,
		TurnoverRate:         d.TurnoverRate,
	}
}

type simulateProjectionRequest struct {
	Home              projectionTeamDTO `json:"home"`
	Away              projectionTeamDTO `json:"away"`
	Seed              *int64            `json:"seed"`
	AllowTies         *bool             `json:"allowTies"`
	MaxOvertimeRounds *int              `json:"maxOvertimeRounds"`
	OvertimeScale     *float64          `json:"overtimeScale"`
	Tiebreak          string            `json:"tiebreak" validate:"omitempty,oneof=expected home"`
}

func (req simulateProjectionRequest) toInput() usecase.ProjectionGameInput {
	return usecase.ProjectionGameInput{
		Home: req.Home.toStats(),
		Away: req.Away.toStats(),
		Config: engine.ProjectionConfig{
			Seed:              req.Seed,
			AllowTies:         req.AllowTies,
			MaxOvertimeRounds: req.MaxOvertimeRounds,
			OvertimeScale:     req.OvertimeScale,
			Tiebreak:          engine.Tiebreak(req.Tiebreak),
		},
	}
}

type simulationRunDTO struct {
	Record simulationRecordDTO `json:"record"`
	Result any                 `json:"result"`
}

func (h *Handler) SimulateDriveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateDriveGame")
	defer span.End()

	var req simulateDriveRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.simulationService.RunDriveGame(ctx, req.toInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "drive simulation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, simulationRunDTO{
		Record: toSimulationRecordDTO(out.Record, false),
		Result: out.Result,
	})
}

func (h *Handler) SimulateProjectionGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateProjectionGame")
	defer span.End()

	var req simulateProjectionRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.simulationService.RunProjectionGame(ctx, req.toInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "projection simulation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, simulationRunDTO{
		Record: toSimulationRecordDTO(out.Record, false),
		Result: out.Result,
	})
}

func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSimulations")
	defer span.End()

	kind := engine.Kind(strings.TrimSpace(r.URL.Query().Get("engine")))

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, usecase.ErrInvalidInput)
			return
		}
		limit = parsed
	}

	records, err := h.simulationService.ListRecent(ctx, kind, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list simulations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]simulationRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, toSimulationRecordDTO(rec, false))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"simulations": out})
}

func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSimulation")
	defer span.End()

	rec, err := h.simulationService.Get(ctx, r.PathValue("simulationID"))
	if err != nil {
		h.logger.ErrorContext(ctx, "get simulation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSimulationRecordDTO(rec, true))
}
