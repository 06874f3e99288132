package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/loantrack/internal/domain"
)

// LoanUseCase handles loan lifecycle operations.
type LoanUseCase struct {
	loanRepo LoanRepository
	idGen    IDGenerator
	clock    Clock
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(loanRepo LoanRepository, idGen IDGenerator, clock Clock) *LoanUseCase {
	return &LoanUseCase{
		loanRepo: loanRepo,
		idGen:    idGen,
		clock:    clock,
	}
}

// CreateLoanInput holds parameters for loan creation.
type CreateLoanInput struct {
	Name           string
	Type           domain.LoanType
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal
	TermMonths     int
	MinimumPayment decimal.Decimal
	StartDate      time.Time
}

// CreateLoan validates the terms and stores a new loan.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error) {
	now := uc.clock.Now()

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	loan := &domain.Loan{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		Type:           input.Type,
		Principal:      input.Principal,
		AnnualRate:     input.AnnualRate,
		TermMonths:     input.TermMonths,
		MinimumPayment: input.MinimumPayment,
		StartDate:      startDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// GetLoan retrieves a loan by ID.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// ListLoansInput holds pagination parameters.
type ListLoansInput struct {
	Limit  int
	Offset int
}

// ListLoans lists loans with pagination.
func (uc *LoanUseCase) ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Loan, error) {
	limit := input.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	return uc.loanRepo.List(ctx, limit, offset)
}

// DeleteLoan removes a loan and its ledger.
func (uc *LoanUseCase) DeleteLoan(ctx context.Context, id string) error {
	if _, err := uc.loanRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.loanRepo.Delete(ctx, id)
}
