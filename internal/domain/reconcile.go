package domain

import "github.com/shopspring/decimal"

// SplitPayment divides an aggregate payment for one month against the given
// balance: interest owed accrues first, the rest pays down principal. Both
// the principal portion and the new balance clamp at zero, so a payment that
// exactly covers the month's interest moves no principal and an over-payment
// never drives the balance negative.
func SplitPayment(balance, amount, monthlyRate decimal.Decimal) (interest, principal, newBalance decimal.Decimal) {
	interest = balance.Mul(monthlyRate)

	principal = amount.Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	if principal.GreaterThan(balance) {
		principal = balance
	}

	return interest, principal, balance.Sub(principal)
}

// EffectiveMinimum is the policy minimum used to classify extra payments and
// to advance the actual track through ledger gaps: the loan's minimum payment
// when set, otherwise the projected monthly payment.
func EffectiveMinimum(loan *Loan, projection *Projection) decimal.Decimal {
	if loan.MinimumPayment.IsPositive() {
		return loan.MinimumPayment
	}
	return projection.MonthlyPayment
}

// Reconcile merges a projection with the actual payment ledger into a
// month-indexed series plus lifetime statistics.
//
// The projected track replays the projection untouched; the actual track
// folds in recorded payments month by month, trusting the most recent
// payment's stored remaining balance where one exists, and assumes the
// scheduled payment was made for months with no ledger entry. The series
// stops as soon as the actual balance reaches zero.
//
// Reconcile is pure: it never mutates its inputs and allocates fresh output,
// so concurrent calls for different loans need no locking.
func Reconcile(loan *Loan, projection *Projection, payments []*Payment) (*Reconciliation, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}

	rate := loan.MonthlyRate()
	scheduled := EffectiveMinimum(loan, projection)
	byMonth := bucketByMonth(loan, payments)

	entries := make([]ScheduleEntry, 0, len(projection.Entries))
	actual := loan.Principal

	for _, pe := range projection.Entries {
		entry := ScheduleEntry{
			Month:              pe.Month,
			ProjectedBalance:   pe.Balance,
			ProjectedInterest:  pe.Interest,
			ProjectedPrincipal: pe.Principal,
		}

		if monthPayments, ok := byMonth[pe.Month]; ok {
			paid := decimal.Zero
			for _, p := range monthPayments {
				paid = paid.Add(p.Amount)
			}

			_, _, actual = SplitPayment(actual, paid, rate)

			// A recorded balance from the month's most recent payment beats
			// the simulated one.
			if last := LatestPayment(monthPayments); last.RemainingBalance != nil {
				actual = *last.RemainingBalance
				if actual.IsNegative() {
					actual = decimal.Zero
				}
			}

			entry.ActualPayment = &paid
		} else if pe.Month > 0 {
			// No ledger entry this month: assume the scheduled payment was
			// made so the actual line stays meaningful through gaps.
			_, _, actual = SplitPayment(actual, scheduled, rate)
		}

		entry.ActualBalance = actual
		entries = append(entries, entry)

		if !actual.IsPositive() && pe.Month > 0 {
			break
		}
	}

	return &Reconciliation{
		Entries: entries,
		Stats:   ComputeStats(loan, projection, payments),
	}, nil
}

// ComputeStats aggregates the full ledger in one pass, independent of the
// schedule series.
func ComputeStats(loan *Loan, projection *Projection, payments []*Payment) LoanStats {
	stats := LoanStats{
		TotalPaid:         decimal.Zero,
		PrincipalPaid:     decimal.Zero,
		InterestPaid:      decimal.Zero,
		ExtraPaymentTotal: decimal.Zero,
	}

	minimum := EffectiveMinimum(loan, projection)

	for _, p := range payments {
		stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		stats.PrincipalPaid = stats.PrincipalPaid.Add(p.PrincipalAmount)
		stats.InterestPaid = stats.InterestPaid.Add(p.InterestAmount)

		if p.IsExtraPayment {
			if over := p.Amount.Sub(minimum); over.IsPositive() {
				stats.ExtraPaymentTotal = stats.ExtraPaymentTotal.Add(over)
			}
		}
	}

	stats.RemainingBalance = loan.Principal.Sub(stats.PrincipalPaid)
	if stats.RemainingBalance.IsNegative() {
		stats.RemainingBalance = decimal.Zero
	}

	return stats
}

// bucketByMonth groups payments by calendar-month offset from the loan start.
// Payments dated before the start are a data-entry reality, not an error;
// they land in month 0.
func bucketByMonth(loan *Loan, payments []*Payment) map[int][]*Payment {
	byMonth := make(map[int][]*Payment, len(payments))
	for _, p := range payments {
		m := MonthsBetween(loan.StartDate, p.PaymentDate)
		if m < 0 {
			m = 0
		}
		byMonth[m] = append(byMonth[m], p)
	}
	return byMonth
}
