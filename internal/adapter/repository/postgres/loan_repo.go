package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/loantrack/internal/domain"
)

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

const createLoanSQL = `
INSERT INTO loans (id, name, type, principal, annual_rate, term_months, minimum_payment, start_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// Create creates a new loan.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	_, err := r.pool.Exec(ctx, createLoanSQL,
		loan.ID,
		loan.Name,
		string(loan.Type),
		decimalToNumeric(loan.Principal),
		decimalToNumeric(loan.AnnualRate),
		loan.TermMonths,
		decimalToNumeric(loan.MinimumPayment),
		timeToPgTimestamptz(loan.StartDate),
		timeToPgTimestamptz(loan.CreatedAt),
		timeToPgTimestamptz(loan.UpdatedAt),
	)

	return err
}

const getLoanSQL = `
SELECT id, name, type, principal, annual_rate, term_months, minimum_payment, start_date, created_at, updated_at
FROM loans
WHERE id = $1
`

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	loan, err := scanLoan(r.pool.QueryRow(ctx, getLoanSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	return loan, nil
}

const listLoansSQL = `
SELECT id, name, type, principal, annual_rate, term_months, minimum_payment, start_date, created_at, updated_at
FROM loans
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

// List lists loans with pagination.
func (r *LoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(ctx, listLoansSQL, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := make([]*domain.Loan, 0, limit)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}

	return loans, rows.Err()
}

const updateLoanSQL = `
UPDATE loans
SET name = $2, type = $3, principal = $4, annual_rate = $5, term_months = $6, minimum_payment = $7, start_date = $8, updated_at = $9
WHERE id = $1
`

// Update updates a loan.
func (r *LoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	tag, err := r.pool.Exec(ctx, updateLoanSQL,
		loan.ID,
		loan.Name,
		string(loan.Type),
		decimalToNumeric(loan.Principal),
		decimalToNumeric(loan.AnnualRate),
		loan.TermMonths,
		decimalToNumeric(loan.MinimumPayment),
		timeToPgTimestamptz(loan.StartDate),
		timeToPgTimestamptz(loan.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

const deleteLoanSQL = `DELETE FROM loans WHERE id = $1`

// Delete removes a loan. Payments are removed by the FK cascade.
func (r *LoanRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteLoanSQL, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		loan           domain.Loan
		loanType       string
		principal      pgtype.Numeric
		annualRate     pgtype.Numeric
		minimumPayment pgtype.Numeric
		startDate      pgtype.Timestamptz
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&loan.ID,
		&loan.Name,
		&loanType,
		&principal,
		&annualRate,
		&loan.TermMonths,
		&minimumPayment,
		&startDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	loan.Type = domain.LoanType(loanType)
	loan.Principal = numericToDecimal(principal)
	loan.AnnualRate = numericToDecimal(annualRate)
	loan.MinimumPayment = numericToDecimal(minimumPayment)
	loan.StartDate = startDate.Time
	loan.CreatedAt = createdAt.Time
	loan.UpdatedAt = updatedAt.Time

	return &loan, nil
}
