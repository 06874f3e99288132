package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/loantrack/internal/adapter/http/dto"
	"github.com/iho/loantrack/internal/domain"
	"github.com/iho/loantrack/internal/usecase"
)

type scheduleServiceStub struct {
	scheduleFn   func(ctx context.Context, input usecase.GetScheduleInput) (*domain.Reconciliation, error)
	statsFn      func(ctx context.Context, loanID string) (*domain.LoanStats, error)
	projectionFn func(ctx context.Context, loanID string) (*domain.Projection, error)
}

func (s *scheduleServiceStub) GetSchedule(ctx context.Context, input usecase.GetScheduleInput) (*domain.Reconciliation, error) {
	return s.scheduleFn(ctx, input)
}

func (s *scheduleServiceStub) GetStats(ctx context.Context, loanID string) (*domain.LoanStats, error) {
	return s.statsFn(ctx, loanID)
}

func (s *scheduleServiceStub) GetProjection(ctx context.Context, loanID string) (*domain.Projection, error) {
	return s.projectionFn(ctx, loanID)
}

func TestScheduleHandler_GetSchedule_PassesHorizon(t *testing.T) {
	var captured usecase.GetScheduleInput
	handler := NewScheduleHandler(&scheduleServiceStub{
		scheduleFn: func(ctx context.Context, input usecase.GetScheduleInput) (*domain.Reconciliation, error) {
			captured = input
			return &domain.Reconciliation{
				Entries: []domain.ScheduleEntry{{Month: 0}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/loans/loan-1/schedule?horizon=24", nil)
	req = setChiURLParam(req, "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.GetSchedule(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.LoanID != "loan-1" || captured.Horizon != 24 {
		t.Fatalf("expected loan-1 horizon=24, got %+v", captured)
	}

	var resp dto.ScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp.Entries))
	}
}

func TestScheduleHandler_GetSchedule_NegativeHorizonIgnored(t *testing.T) {
	handler := NewScheduleHandler(&scheduleServiceStub{
		scheduleFn: func(ctx context.Context, input usecase.GetScheduleInput) (*domain.Reconciliation, error) {
			if input.Horizon != 0 {
				t.Fatalf("expected horizon 0, got %d", input.Horizon)
			}
			return &domain.Reconciliation{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/loans/loan-1/schedule?horizon=-5", nil)
	req = setChiURLParam(req, "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.GetSchedule(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestScheduleHandler_GetSchedule_LoanNotFound(t *testing.T) {
	handler := NewScheduleHandler(&scheduleServiceStub{
		scheduleFn: func(ctx context.Context, input usecase.GetScheduleInput) (*domain.Reconciliation, error) {
			return nil, domain.ErrLoanNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/loans/missing/schedule", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.GetSchedule(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestScheduleHandler_GetStats(t *testing.T) {
	handler := NewScheduleHandler(&scheduleServiceStub{
		statsFn: func(ctx context.Context, loanID string) (*domain.LoanStats, error) {
			return &domain.LoanStats{
				TotalPaid:        decimal.NewFromInt(1000),
				RemainingBalance: decimal.NewFromInt(9000),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/loans/loan-1/stats", nil)
	req = setChiURLParam(req, "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.GetStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats domain.LoanStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !stats.TotalPaid.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected total paid 1000, got %s", stats.TotalPaid)
	}
}

func TestScheduleHandler_GetProjection(t *testing.T) {
	handler := NewScheduleHandler(&scheduleServiceStub{
		projectionFn: func(ctx context.Context, loanID string) (*domain.Projection, error) {
			return &domain.Projection{
				MonthlyPayment: decimal.NewFromFloat(477.53),
				Entries:        []domain.ProjectionEntry{{Month: 0}, {Month: 1}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/loans/loan-1/projection", nil)
	req = setChiURLParam(req, "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.GetProjection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ProjectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Entries))
	}
}
