package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/loantrack/internal/adapter/http/dto"
	"github.com/iho/loantrack/internal/domain"
	"github.com/iho/loantrack/internal/infrastructure/metrics"
	"github.com/iho/loantrack/internal/usecase"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	GetSchedule(ctx context.Context, input usecase.GetScheduleInput) (*domain.Reconciliation, error)
	GetStats(ctx context.Context, loanID string) (*domain.LoanStats, error)
	GetProjection(ctx context.Context, loanID string) (*domain.Projection, error)
}

// ScheduleHandler serves reconciled schedules and statistics.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// GetSchedule returns the reconciled month-indexed series plus stats.
// The optional ?horizon query caps the number of months returned for charts
// without touching the payoff math.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "id")
	if loanID == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	horizon := parseIntQuery(r, "horizon", 0)
	if horizon < 0 {
		horizon = 0
	}

	start := time.Now()
	rec, err := h.scheduleUC.GetSchedule(r.Context(), usecase.GetScheduleInput{
		LoanID:  loanID,
		Horizon: horizon,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute schedule", err.Error())
		return
	}
	metrics.ScheduleComputeDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(rec))
}

// GetStats returns only the aggregate statistics.
func (h *ScheduleHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "id")
	if loanID == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	stats, err := h.scheduleUC.GetStats(r.Context(), loanID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetProjection returns the theoretical payment plan for a loan.
func (h *ScheduleHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "id")
	if loanID == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	proj, err := h.scheduleUC.GetProjection(r.Context(), loanID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute projection", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectionFromDomain(proj))
}
