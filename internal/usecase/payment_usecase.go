package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/loantrack/internal/domain"
)

// PaymentUseCase records payments against a loan's ledger.
type PaymentUseCase struct {
	loanRepo    LoanRepository
	paymentRepo PaymentRepository
	cache       Cache
	idGen       IDGenerator
	clock       Clock
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	loanRepo LoanRepository,
	paymentRepo PaymentRepository,
	cache Cache,
	idGen IDGenerator,
	clock Clock,
) *PaymentUseCase {
	return &PaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		idGen:       idGen,
		clock:       clock,
	}
}

// RecordPaymentInput holds parameters for recording a payment. The split and
// payment date are optional: when the client omits them the use case derives
// the split from the loan's current balance and dates the payment now.
type RecordPaymentInput struct {
	LoanID          string
	Amount          decimal.Decimal
	PaymentDate     *time.Time
	PrincipalAmount *decimal.Decimal
	InterestAmount  *decimal.Decimal
}

// RecordPayment validates and appends a payment to the ledger. The payment
// carries its principal/interest split and the balance immediately after it,
// both frozen at recording time.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	loan, err := uc.loanRepo.GetByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	paymentDate := now
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	balance, err := uc.currentBalance(ctx, loan)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uc.idGen.Generate(),
		LoanID:      loan.ID,
		Amount:      input.Amount,
		PaymentDate: paymentDate,
		CreatedAt:   now,
	}

	if input.PrincipalAmount != nil && input.InterestAmount != nil {
		// Trust the client's split; Validate enforces the sum invariant.
		payment.PrincipalAmount = *input.PrincipalAmount
		payment.InterestAmount = *input.InterestAmount

		remaining := balance.Sub(payment.PrincipalAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		payment.RemainingBalance = &remaining
	} else {
		_, principal, remaining := domain.SplitPayment(balance, input.Amount, loan.MonthlyRate())

		// Whatever does not pay down principal counts as interest, so the
		// recorded split always sums to the amount.
		payment.PrincipalAmount = principal
		payment.InterestAmount = input.Amount.Sub(principal)
		payment.RemainingBalance = &remaining
	}

	if err := payment.Validate(now); err != nil {
		return nil, err
	}

	minimum, err := uc.effectiveMinimum(loan)
	if err != nil {
		return nil, err
	}
	payment.IsExtraPayment = minimum.IsPositive() && input.Amount.GreaterThan(minimum)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// The cached schedule is stale the moment the ledger grows.
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, scheduleCacheKey(loan.ID))
	}

	return payment, nil
}

// ListPayments returns the full ledger for a loan in creation order.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	if _, err := uc.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListByLoan(ctx, loanID)
}

// currentBalance is the most recent payment's recorded balance, falling back
// to the principal for an empty ledger.
func (uc *PaymentUseCase) currentBalance(ctx context.Context, loan *domain.Loan) (decimal.Decimal, error) {
	latest, err := uc.paymentRepo.LatestByLoan(ctx, loan.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return loan.Principal, nil
		}
		return decimal.Zero, err
	}

	if latest.RemainingBalance != nil {
		return *latest.RemainingBalance, nil
	}

	return loan.Principal, nil
}

func (uc *PaymentUseCase) effectiveMinimum(loan *domain.Loan) (decimal.Decimal, error) {
	if loan.MinimumPayment.IsPositive() {
		return loan.MinimumPayment, nil
	}

	projection, err := domain.ComputeProjection(loan)
	if err != nil {
		return decimal.Zero, err
	}

	return projection.MonthlyPayment, nil
}
