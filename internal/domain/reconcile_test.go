package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustProjection(t *testing.T, loan *Loan) *Projection {
	t.Helper()

	proj, err := ComputeProjection(loan)
	require.NoError(t, err)

	return proj
}

func paymentOn(loan *Loan, monthOffset int, amount, principal, interest float64) *Payment {
	return &Payment{
		ID:              "pay-" + time.Now().Format("150405.000000000"),
		LoanID:          loan.ID,
		Amount:          decimal.NewFromFloat(amount),
		PrincipalAmount: decimal.NewFromFloat(principal),
		InterestAmount:  decimal.NewFromFloat(interest),
		PaymentDate:     loan.StartDate.AddDate(0, monthOffset, 0),
	}
}

func TestSplitPayment(t *testing.T) {
	rate := decimal.NewFromFloat(0.005) // 6% annual

	tests := []struct {
		name          string
		balance       float64
		amount        float64
		wantInterest  float64
		wantPrincipal float64
		wantBalance   float64
	}{
		{
			name:          "normal payment",
			balance:       10000,
			amount:        500,
			wantInterest:  50,
			wantPrincipal: 450,
			wantBalance:   9550,
		},
		{
			name:          "interest-only payment moves no principal",
			balance:       10000,
			amount:        50,
			wantInterest:  50,
			wantPrincipal: 0,
			wantBalance:   10000,
		},
		{
			name:          "below interest still moves no principal",
			balance:       10000,
			amount:        20,
			wantInterest:  50,
			wantPrincipal: 0,
			wantBalance:   10000,
		},
		{
			name:          "overpayment clamps at zero balance",
			balance:       100,
			amount:        5000,
			wantInterest:  0.5,
			wantPrincipal: 100,
			wantBalance:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interest, principal, balance := SplitPayment(
				decimal.NewFromFloat(tt.balance),
				decimal.NewFromFloat(tt.amount),
				rate,
			)

			require.InDelta(t, tt.wantInterest, interest.InexactFloat64(), 0.001)
			require.InDelta(t, tt.wantPrincipal, principal.InexactFloat64(), 0.001)
			require.InDelta(t, tt.wantBalance, balance.InexactFloat64(), 0.001)
		})
	}
}

func TestReconcile_EmptyLedgerMatchesProjection(t *testing.T) {
	loans := []*Loan{
		testLoan(25000, 5.5, 60, 0),
		testLoan(10000, 12, 0, 500),
		testLoan(5000, 7, 0, 0),
	}

	for _, loan := range loans {
		proj := mustProjection(t, loan)

		rec, err := Reconcile(loan, proj, nil)
		require.NoError(t, err)

		require.Equal(t, len(proj.Entries), len(rec.Entries))
		for i, entry := range rec.Entries {
			require.True(t, entry.ActualBalance.Equal(entry.ProjectedBalance),
				"month %d: actual %s != projected %s", i, entry.ActualBalance, entry.ProjectedBalance)
			require.Nil(t, entry.ActualPayment)
		}

		require.True(t, rec.Stats.TotalPaid.IsZero())
		require.True(t, rec.Stats.RemainingBalance.Equal(loan.Principal))
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	loan := testLoan(25000, 5.5, 60, 0)
	proj := mustProjection(t, loan)

	payments := []*Payment{
		paymentOn(loan, 1, 477.53, 362.95, 114.58),
		paymentOn(loan, 2, 477.53, 364.62, 112.91),
		paymentOn(loan, 3, 600.00, 488.74, 111.26),
	}

	first, err := Reconcile(loan, proj, payments)
	require.NoError(t, err)

	second, err := Reconcile(loan, proj, payments)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestReconcile_StoredBalanceIsAuthoritative(t *testing.T) {
	loan := testLoan(25000, 5.5, 60, 0)
	proj := mustProjection(t, loan)

	recorded := decimal.NewFromFloat(24500)
	p := paymentOn(loan, 1, 477.53, 362.95, 114.58)
	p.RemainingBalance = &recorded

	rec, err := Reconcile(loan, proj, []*Payment{p})
	require.NoError(t, err)

	require.True(t, rec.Entries[1].ActualBalance.Equal(recorded),
		"month 1 should carry the recorded balance, got %s", rec.Entries[1].ActualBalance)
	require.NotNil(t, rec.Entries[1].ActualPayment)
	require.True(t, rec.Entries[1].ActualPayment.Equal(p.Amount))
}

func TestReconcile_GapMonthsAdvanceWithScheduledPayment(t *testing.T) {
	loan := testLoan(25000, 5.5, 60, 0)
	proj := mustProjection(t, loan)

	// Single payment in month 2, nothing in month 1.
	payments := []*Payment{paymentOn(loan, 2, 477.53, 364.62, 112.91)}

	rec, err := Reconcile(loan, proj, payments)
	require.NoError(t, err)

	// Month 1 has no ledger entry, so the actual track assumed the scheduled
	// payment and stays on the projected curve.
	require.Nil(t, rec.Entries[1].ActualPayment)
	require.True(t, rec.Entries[1].ActualBalance.Equal(rec.Entries[1].ProjectedBalance))
	require.NotNil(t, rec.Entries[2].ActualPayment)
}

func TestReconcile_PayoffTruncatesSeries(t *testing.T) {
	loan := testLoan(25000, 5.5, 60, 0)
	proj := mustProjection(t, loan)

	paidOff := decimal.Zero
	p := paymentOn(loan, 3, 25200, 25000, 200)
	p.RemainingBalance = &paidOff

	rec, err := Reconcile(loan, proj, []*Payment{p})
	require.NoError(t, err)

	last := rec.Entries[len(rec.Entries)-1]
	require.Equal(t, 3, last.Month, "series must stop at payoff month")
	require.True(t, last.ActualBalance.IsZero())
}

func TestReconcile_PaymentBeforeStartClampsToMonthZero(t *testing.T) {
	loan := testLoan(25000, 5.5, 60, 0)
	proj := mustProjection(t, loan)

	p := paymentOn(loan, 0, 477.53, 362.95, 114.58)
	p.PaymentDate = loan.StartDate.AddDate(0, -2, 0)

	rec, err := Reconcile(loan, proj, []*Payment{p})
	require.NoError(t, err)

	require.NotNil(t, rec.Entries[0].ActualPayment)
}

func TestReconcile_InvalidLoan(t *testing.T) {
	loan := testLoan(-1, 5.5, 60, 0)

	_, err := Reconcile(loan, &Projection{}, nil)
	require.ErrorIs(t, err, ErrInvalidLoan)
}

func TestComputeStats(t *testing.T) {
	loan := testLoan(25000, 5.5, 60, 0)
	proj := mustProjection(t, loan)

	extra := paymentOn(loan, 3, 1000, 888.74, 111.26)
	extra.IsExtraPayment = true

	payments := []*Payment{
		paymentOn(loan, 1, 477.53, 362.95, 114.58),
		paymentOn(loan, 2, 477.53, 364.62, 112.91),
		extra,
	}

	stats := ComputeStats(loan, proj, payments)

	require.InDelta(t, 1955.06, stats.TotalPaid.InexactFloat64(), 0.01)
	require.InDelta(t, 1616.31, stats.PrincipalPaid.InexactFloat64(), 0.01)
	require.InDelta(t, 338.75, stats.InterestPaid.InexactFloat64(), 0.01)

	// totalPaid == principalPaid + interestPaid within tolerance.
	sum := stats.PrincipalPaid.Add(stats.InterestPaid)
	require.True(t, stats.TotalPaid.Sub(sum).Abs().LessThan(decimal.NewFromFloat(0.01)))

	// Extra total is the overage beyond the effective minimum.
	wantExtra := decimal.NewFromFloat(1000).Sub(proj.MonthlyPayment)
	require.InDelta(t, wantExtra.InexactFloat64(), stats.ExtraPaymentTotal.InexactFloat64(), 0.01)

	require.InDelta(t, 25000-1616.31, stats.RemainingBalance.InexactFloat64(), 0.01)
}

func TestComputeStats_SplitSumProperty(t *testing.T) {
	configs := []*Loan{
		testLoan(25000, 5.5, 60, 0),
		testLoan(10000, 0, 24, 0),
		testLoan(8000, 18, 0, 200),
	}

	for _, loan := range configs {
		proj := mustProjection(t, loan)

		payments := []*Payment{
			paymentOn(loan, 1, 300, 250, 50),
			paymentOn(loan, 2, 300, 255, 45),
			paymentOn(loan, 5, 1000, 980, 20),
		}

		stats := ComputeStats(loan, proj, payments)

		sum := stats.PrincipalPaid.Add(stats.InterestPaid)
		require.True(t, stats.TotalPaid.Sub(sum).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
			"loan %s: %s != %s", loan.Principal, stats.TotalPaid, sum)
		require.False(t, stats.RemainingBalance.IsNegative())
	}
}
