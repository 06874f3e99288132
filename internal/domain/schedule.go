package domain

import "github.com/shopspring/decimal"

// ProjectionEntry is one month of the theoretical payoff curve, ignoring the
// actual payment ledger entirely.
type ProjectionEntry struct {
	Month     int             `json:"month"`
	Balance   decimal.Decimal `json:"balance"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
}

// Projection is the theoretical payment plan derived from loan terms alone.
type Projection struct {
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	Entries        []ProjectionEntry `json:"entries"`
	TotalInterest  decimal.Decimal   `json:"total_interest"`
	// CapReached is true when an open-ended simulation hit the horizon cap
	// before the balance amortized; TotalInterest is then the interest-only
	// estimate rather than a simulated accrual.
	CapReached bool `json:"cap_reached"`
}

// ScheduleEntry is one month of the reconciled series, carrying both the
// projected and the actual balance track.
type ScheduleEntry struct {
	Month              int              `json:"month"`
	ProjectedBalance   decimal.Decimal  `json:"projected_balance"`
	ProjectedInterest  decimal.Decimal  `json:"projected_interest"`
	ProjectedPrincipal decimal.Decimal  `json:"projected_principal"`
	ActualBalance      decimal.Decimal  `json:"actual_balance"`
	ActualPayment      *decimal.Decimal `json:"actual_payment,omitempty"`
}

// LoanStats aggregates the payment ledger over the life of a loan.
type LoanStats struct {
	TotalPaid         decimal.Decimal `json:"total_paid"`
	PrincipalPaid     decimal.Decimal `json:"principal_paid"`
	InterestPaid      decimal.Decimal `json:"interest_paid"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	ExtraPaymentTotal decimal.Decimal `json:"extra_payment_total"`
}

// Reconciliation is the merged output of the projection and the ledger.
type Reconciliation struct {
	Entries []ScheduleEntry `json:"entries"`
	Stats   LoanStats       `json:"stats"`
}
