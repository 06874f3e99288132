package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// OpenEndedHorizonMonths caps the simulation for open-ended loans so the
	// engine terminates even when the minimum payment never amortizes the
	// balance (interest-only or negative-amortization inputs).
	OpenEndedHorizonMonths = 300

	// DefaultRenderHorizonMonths is the display cap applied when a caller
	// asks for a truncated series. It only trims the returned rows; payoff
	// math always runs over the full horizon.
	DefaultRenderHorizonMonths = 60
)

var one = decimal.NewFromInt(1)

// AnnuityPayment computes the fixed monthly payment for a fixed-term loan:
// P * r * (1+r)^n / ((1+r)^n - 1), falling back to straight-line P/n when the
// rate is zero.
func AnnuityPayment(principal, monthlyRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %d months", ErrInvalidTerm, termMonths)
	}

	n := decimal.NewFromInt(int64(termMonths))
	if monthlyRate.IsZero() {
		return principal.Div(n), nil
	}

	factor := one.Add(monthlyRate).Pow(n)

	return principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one)), nil
}

// ComputeProjection derives the theoretical monthly payment and payoff curve
// from the loan terms alone, assuming every scheduled payment is made.
//
// Month 0 is the disbursement month: balance equals principal, nothing paid.
func ComputeProjection(loan *Loan) (*Projection, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}

	switch {
	case loan.TermMonths > 0:
		return projectFixedTerm(loan)
	case loan.MinimumPayment.IsPositive():
		return projectOpenEnded(loan)
	default:
		// Informational loan: no term, no minimum payment, no plan.
		return &Projection{
			MonthlyPayment: decimal.Zero,
			Entries:        []ProjectionEntry{{Month: 0, Balance: loan.Principal}},
			TotalInterest:  decimal.Zero,
		}, nil
	}
}

func projectFixedTerm(loan *Loan) (*Projection, error) {
	rate := loan.MonthlyRate()

	payment, err := AnnuityPayment(loan.Principal, rate, loan.TermMonths)
	if err != nil {
		return nil, err
	}

	entries := make([]ProjectionEntry, 0, loan.TermMonths+1)
	entries = append(entries, ProjectionEntry{Month: 0, Balance: loan.Principal})

	balance := loan.Principal
	totalInterest := decimal.Zero

	for m := 1; m <= loan.TermMonths; m++ {
		interest := balance.Mul(rate)
		principal := payment.Sub(interest)
		if principal.GreaterThan(balance) {
			principal = balance
		}

		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		totalInterest = totalInterest.Add(interest)
		entries = append(entries, ProjectionEntry{
			Month:     m,
			Balance:   balance,
			Interest:  interest,
			Principal: principal,
		})

		// Rounding can pay the loan off before the final month.
		if balance.IsZero() {
			break
		}
	}

	return &Projection{
		MonthlyPayment: payment,
		Entries:        entries,
		TotalInterest:  totalInterest,
	}, nil
}

func projectOpenEnded(loan *Loan) (*Projection, error) {
	rate := loan.MonthlyRate()
	payment := loan.MinimumPayment

	entries := []ProjectionEntry{{Month: 0, Balance: loan.Principal}}
	balance := loan.Principal
	totalInterest := decimal.Zero

	for m := 1; m <= OpenEndedHorizonMonths; m++ {
		interest := balance.Mul(rate)
		principal := payment.Sub(interest)
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		if principal.GreaterThan(balance) {
			principal = balance
		}

		balance = balance.Sub(principal)

		// Interest accrues even when principal does not move, which is what
		// makes the negative-amortization case add up correctly.
		totalInterest = totalInterest.Add(interest)
		entries = append(entries, ProjectionEntry{
			Month:     m,
			Balance:   balance,
			Interest:  interest,
			Principal: principal,
		})

		if balance.IsZero() {
			break
		}
	}

	capReached := balance.IsPositive()
	if capReached {
		// The simulation never converged within the cap. Lifetime interest is
		// then an interest-only estimate (principal * rate * cap), which is an
		// intentional approximation, not a projection.
		totalInterest = loan.Principal.Mul(rate).Mul(decimal.NewFromInt(OpenEndedHorizonMonths))
	}

	return &Projection{
		MonthlyPayment: payment,
		Entries:        entries,
		TotalInterest:  totalInterest,
		CapReached:     capReached,
	}, nil
}
