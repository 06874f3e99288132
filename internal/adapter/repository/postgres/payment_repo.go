package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/loantrack/internal/domain"
)

// PaymentRepository implements usecase.PaymentRepository. The ledger is
// append-only; there is no update path.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const createPaymentSQL = `
INSERT INTO payments (id, loan_id, amount, principal_amount, interest_amount, remaining_balance, payment_date, is_extra_payment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Create appends a payment to the ledger.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	_, err := r.pool.Exec(ctx, createPaymentSQL,
		payment.ID,
		payment.LoanID,
		decimalToNumeric(payment.Amount),
		decimalToNumeric(payment.PrincipalAmount),
		decimalToNumeric(payment.InterestAmount),
		decimalPtrToNumeric(payment.RemainingBalance),
		timeToPgTimestamptz(payment.PaymentDate),
		payment.IsExtraPayment,
		timeToPgTimestamptz(payment.CreatedAt),
	)

	return err
}

const getPaymentSQL = `
SELECT id, loan_id, amount, principal_amount, interest_amount, remaining_balance, payment_date, is_extra_payment, created_at
FROM payments
WHERE id = $1
`

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := scanPayment(r.pool.QueryRow(ctx, getPaymentSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return payment, nil
}

const listPaymentsSQL = `
SELECT id, loan_id, amount, principal_amount, interest_amount, remaining_balance, payment_date, is_extra_payment, created_at
FROM payments
WHERE loan_id = $1
ORDER BY created_at
`

// ListByLoan returns all payments for a loan in insertion order.
func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, listPaymentsSQL, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

const latestPaymentSQL = `
SELECT id, loan_id, amount, principal_amount, interest_amount, remaining_balance, payment_date, is_extra_payment, created_at
FROM payments
WHERE loan_id = $1
ORDER BY payment_date DESC, created_at DESC
LIMIT 1
`

// LatestByLoan returns the payment with the most recent payment date.
func (r *PaymentRepository) LatestByLoan(ctx context.Context, loanID string) (*domain.Payment, error) {
	payment, err := scanPayment(r.pool.QueryRow(ctx, latestPaymentSQL, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return payment, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment          domain.Payment
		amount           pgtype.Numeric
		principalAmount  pgtype.Numeric
		interestAmount   pgtype.Numeric
		remainingBalance pgtype.Numeric
		paymentDate      pgtype.Timestamptz
		createdAt        pgtype.Timestamptz
	)

	err := row.Scan(
		&payment.ID,
		&payment.LoanID,
		&amount,
		&principalAmount,
		&interestAmount,
		&remainingBalance,
		&paymentDate,
		&payment.IsExtraPayment,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	payment.Amount = numericToDecimal(amount)
	payment.PrincipalAmount = numericToDecimal(principalAmount)
	payment.InterestAmount = numericToDecimal(interestAmount)
	payment.RemainingBalance = numericToDecimalPtr(remainingBalance)
	payment.PaymentDate = paymentDate.Time
	payment.CreatedAt = createdAt.Time

	return &payment, nil
}
