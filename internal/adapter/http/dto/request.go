package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/loantrack/internal/domain"
	"github.com/iho/loantrack/internal/usecase"
)

// CreateLoanRequest represents a request to create a loan.
type CreateLoanRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	TermMonths     int             `json:"term_months"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLoanRequest) ToUseCaseInput() usecase.CreateLoanInput {
	input := usecase.CreateLoanInput{
		Name:           r.Name,
		Type:           domain.LoanType(r.Type),
		Principal:      r.Principal,
		AnnualRate:     r.AnnualRate,
		TermMonths:     r.TermMonths,
		MinimumPayment: r.MinimumPayment,
	}
	if r.StartDate != nil {
		input.StartDate = *r.StartDate
	}
	return input
}

// RecordPaymentRequest represents a request to record a payment. The split
// is optional; when omitted the server derives it from the current balance.
type RecordPaymentRequest struct {
	Amount          decimal.Decimal  `json:"amount"`
	PaymentDate     *time.Time       `json:"payment_date,omitempty"`
	PrincipalAmount *decimal.Decimal `json:"principal_amount,omitempty"`
	InterestAmount  *decimal.Decimal `json:"interest_amount,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput(loanID string) usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		LoanID:          loanID,
		Amount:          r.Amount,
		PaymentDate:     r.PaymentDate,
		PrincipalAmount: r.PrincipalAmount,
		InterestAmount:  r.InterestAmount,
	}
}
