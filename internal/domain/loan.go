package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Loan represents the terms of a borrowing agreement.
//
// TermMonths == 0 means the loan is open-ended (revolving credit, student
// loan) and is governed by MinimumPayment instead of a payoff term. A zero
// MinimumPayment means "not set". A loan with neither a term nor a minimum
// payment is a valid informational record with no computed payment plan.
type Loan struct {
	ID             string
	Name           string
	Type           LoanType
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal // percent, 0..100
	TermMonths     int
	MinimumPayment decimal.Decimal
	StartDate      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MonthlyRate converts the annual percentage rate to a monthly fraction.
func (l *Loan) MonthlyRate() decimal.Decimal {
	return l.AnnualRate.Div(decimal.NewFromInt(100)).Div(monthsPerYear)
}

// IsOpenEnded reports whether the loan amortizes against a minimum payment
// rather than a fixed term.
func (l *Loan) IsOpenEnded() bool {
	return l.TermMonths == 0 && l.MinimumPayment.IsPositive()
}

// Validate checks the loan terms before any amortization is attempted.
func (l *Loan) Validate() error {
	if !l.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidLoan, l.Principal)
	}

	if l.AnnualRate.IsNegative() || l.AnnualRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: annual rate must be between 0 and 100, got %s", ErrInvalidLoan, l.AnnualRate)
	}

	if l.TermMonths < 0 {
		return fmt.Errorf("%w: term months cannot be negative", ErrInvalidLoan)
	}

	if l.MinimumPayment.IsNegative() {
		return fmt.Errorf("%w: minimum payment cannot be negative", ErrInvalidLoan)
	}

	if l.Type != "" && !l.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, l.Type)
	}

	return nil
}
