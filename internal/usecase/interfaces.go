package usecase

import (
	"context"
	"time"

	"github.com/iho/loantrack/internal/domain"
)

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository defines data access for the append-only payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	// ListByLoan returns payments ordered by creation, which is not
	// necessarily ordered by payment date.
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error)
	// LatestByLoan returns the payment with the most recent payment date,
	// or domain.ErrPaymentNotFound for an empty ledger.
	LatestByLoan(ctx context.Context, loanID string) (*domain.Payment, error)
}

// Cache defines caching operations for computed schedules.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies "now" so date validation stays deterministic under test.
type Clock interface {
	Now() time.Time
}
