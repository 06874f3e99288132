package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// splitTolerance absorbs cent-level rounding between a payment amount and
// its recorded principal/interest split.
var splitTolerance = decimal.NewFromFloat(0.01)

// Payment is one recorded transaction against a loan. Payments form an
// append-only ledger: once created they are never mutated, only read.
type Payment struct {
	ID              string
	LoanID          string
	Amount          decimal.Decimal
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	// RemainingBalance is the balance immediately after this payment as
	// recorded at creation time. Nil when the source of the payment did not
	// record one.
	RemainingBalance *decimal.Decimal
	PaymentDate      time.Time
	IsExtraPayment   bool
	CreatedAt        time.Time
}

// Validate checks a payment before it enters the ledger. now is injected so
// the future-date check stays deterministic under test.
func (p *Payment) Validate(now time.Time) error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount %s", ErrInvalidAmount, p.Amount)
	}

	if p.PaymentDate.After(now) {
		return fmt.Errorf("%w: %s", ErrFuturePaymentDate, p.PaymentDate.Format(time.DateOnly))
	}

	// Only enforce the split invariant when a split was recorded.
	if !p.PrincipalAmount.IsZero() || !p.InterestAmount.IsZero() {
		diff := p.PrincipalAmount.Add(p.InterestAmount).Sub(p.Amount).Abs()
		if diff.GreaterThan(splitTolerance) {
			return fmt.Errorf("%w: %s + %s != %s", ErrSplitMismatch, p.PrincipalAmount, p.InterestAmount, p.Amount)
		}
	}

	return nil
}

// SortPaymentsByDate orders a ledger chronologically. The ledger arrives
// ordered by creation, which is not necessarily ordered by payment date.
func SortPaymentsByDate(payments []*Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaymentDate.Before(payments[j].PaymentDate)
	})
}

// LatestPayment returns the payment with the most recent payment date, or
// nil for an empty ledger. Its recorded remaining balance is treated as
// authoritative for "current balance".
func LatestPayment(payments []*Payment) *Payment {
	var latest *Payment
	for _, p := range payments {
		if latest == nil || p.PaymentDate.After(latest.PaymentDate) {
			latest = p
		}
	}
	return latest
}
