package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/scorecastlab/scorecast/internal/domain/simulation"
	"github.com/scorecastlab/scorecast/internal/platform/logging"
	"github.com/scorecastlab/scorecast/internal/usecase"
)

type Handler struct {
	simulationService *usecase.SimulationService
	batchService      *usecase.BatchService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	simulationService *usecase.SimulationService,
	batchService *usecase.BatchService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		simulationService: simulationService,
		batchService:      batchService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(r *http.Request, dst any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type simulationRecordDTO struct {
	ID             string          `json:"id"`
	Engine         string          `json:"engine"`
	Seed           *int64          `json:"seed,omitempty"`
	HomeScore      int             `json:"homeScore"`
	AwayScore      int             `json:"awayScore"`
	Winner         string          `json:"winner"`
	OvertimeRounds int             `json:"overtimeRounds"`
	Tiebreak       string          `json:"tiebreak"`
	CreatedAt      time.Time       `json:"createdAt"`
	Result         json.RawMessage `json:"result,omitempty"`
}

func toSimulationRecordDTO(rec simulation.Record, includeDetail bool) simulationRecordDTO {
	dto := simulationRecordDTO{
		ID:             rec.ID,
		Engine:         string(rec.Engine),
		Seed:           rec.Seed,
		HomeScore:      rec.HomeScore,
		AwayScore:      rec.AwayScore,
		Winner:         rec.Winner(),
		OvertimeRounds: rec.OvertimeRounds,
		Tiebreak:       string(rec.Tiebreak),
		CreatedAt:      rec.CreatedAt,
	}
	if includeDetail {
		dto.Result = json.RawMessage(rec.Detail)
	}
	return dto
}
