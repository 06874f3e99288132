package usecase

import (
	"context"
	"encoding/json"

	"github.com/iho/loantrack/internal/domain"
)

// ScheduleUseCase computes reconciled schedules and statistics for a loan.
type ScheduleUseCase struct {
	loanRepo    LoanRepository
	paymentRepo PaymentRepository
	cache       Cache
}

// NewScheduleUseCase creates a new ScheduleUseCase.
func NewScheduleUseCase(loanRepo LoanRepository, paymentRepo PaymentRepository, cache Cache) *ScheduleUseCase {
	return &ScheduleUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// GetScheduleInput holds parameters for schedule computation.
type GetScheduleInput struct {
	LoanID string
	// Horizon caps the number of months returned for display. Zero means no
	// cap. It never changes the underlying payoff math.
	Horizon int
}

// GetSchedule returns the reconciled month-indexed series plus lifetime
// statistics for a loan, served from cache when the ledger has not changed.
func (uc *ScheduleUseCase) GetSchedule(ctx context.Context, input GetScheduleInput) (*domain.Reconciliation, error) {
	if input.Horizon == 0 {
		if cached := uc.fromCache(ctx, input.LoanID); cached != nil {
			return cached, nil
		}
	}

	rec, err := uc.compute(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	if input.Horizon == 0 {
		uc.toCache(ctx, input.LoanID, rec)
		return rec, nil
	}

	if len(rec.Entries) > input.Horizon+1 {
		trimmed := *rec
		trimmed.Entries = rec.Entries[:input.Horizon+1]
		return &trimmed, nil
	}

	return rec, nil
}

// GetStats returns only the aggregate statistics for a loan.
func (uc *ScheduleUseCase) GetStats(ctx context.Context, loanID string) (*domain.LoanStats, error) {
	rec, err := uc.GetSchedule(ctx, GetScheduleInput{LoanID: loanID})
	if err != nil {
		return nil, err
	}

	return &rec.Stats, nil
}

// GetProjection returns the pure theoretical payment plan, untouched by the
// payment ledger.
func (uc *ScheduleUseCase) GetProjection(ctx context.Context, loanID string) (*domain.Projection, error) {
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	return domain.ComputeProjection(loan)
}

func (uc *ScheduleUseCase) compute(ctx context.Context, loanID string) (*domain.Reconciliation, error) {
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	projection, err := domain.ComputeProjection(loan)
	if err != nil {
		return nil, err
	}

	return domain.Reconcile(loan, projection, payments)
}

func (uc *ScheduleUseCase) fromCache(ctx context.Context, loanID string) *domain.Reconciliation {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, scheduleCacheKey(loanID))
	if err != nil || len(data) == 0 {
		return nil
	}

	var rec domain.Reconciliation
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}

	return &rec
}

func (uc *ScheduleUseCase) toCache(ctx context.Context, loanID string, rec *domain.Reconciliation) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, scheduleCacheKey(loanID), data, ScheduleCacheTTL)
}

func scheduleCacheKey(loanID string) string {
	return "schedule:" + loanID
}
