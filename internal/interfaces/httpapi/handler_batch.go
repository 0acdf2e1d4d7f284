package httpapi

import (
	"net/http"

	"github.com/scorecastlab/scorecast/internal/usecase"
)

type driveBatchRequest struct {
	simulateDriveRequest
	Runs       int `json:"runs" validate:"omitempty,gt=0"`
	MaxWorkers int `json:"maxWorkers" validate:"omitempty,gt=0"`
}

type projectionBatchRequest struct {
	simulateProjectionRequest
	Runs       int `json:"runs" validate:"omitempty,gt=0"`
	MaxWorkers int `json:"maxWorkers" validate:"omitempty,gt=0"`
}

func (h *Handler) RunDriveBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDriveBatch")
	defer span.End()

	var req driveBatchRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	base := req.simulateDriveRequest.toInput()
	summary, err := h.batchService.RunDriveBatch(ctx, usecase.DriveBatchInput{
		Home:       base.Home,
		Away:       base.Away,
		Config:     base.Config,
		Runs:       req.Runs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "drive batch failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) RunProjectionBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunProjectionBatch")
	defer span.End()

	var req projectionBatchRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	base := req.simulateProjectionRequest.toInput()
	summary, err := h.batchService.RunProjectionBatch(ctx, usecase.ProjectionBatchInput{
		Home:       base.Home,
		Away:       base.Away,
		Config:     base.Config,
		Runs:       req.Runs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "projection batch failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
