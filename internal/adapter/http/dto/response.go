package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/loantrack/internal/domain"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type,omitempty"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	TermMonths     int             `json:"term_months"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
	StartDate      time.Time       `json:"start_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LoanFromDomain converts a domain loan to a response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:             l.ID,
		Name:           l.Name,
		Type:           string(l.Type),
		Principal:      l.Principal,
		AnnualRate:     l.AnnualRate,
		TermMonths:     l.TermMonths,
		MinimumPayment: l.MinimumPayment,
		StartDate:      l.StartDate,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// ListLoansResponse wraps a loan listing.
type ListLoansResponse struct {
	Loans []*LoanResponse `json:"loans"`
	Total int64           `json:"total"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID               string           `json:"id"`
	LoanID           string           `json:"loan_id"`
	Amount           decimal.Decimal  `json:"amount"`
	PrincipalAmount  decimal.Decimal  `json:"principal_amount"`
	InterestAmount   decimal.Decimal  `json:"interest_amount"`
	RemainingBalance *decimal.Decimal `json:"remaining_balance,omitempty"`
	PaymentDate      time.Time        `json:"payment_date"`
	IsExtraPayment   bool             `json:"is_extra_payment"`
	CreatedAt        time.Time        `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		LoanID:           p.LoanID,
		Amount:           p.Amount,
		PrincipalAmount:  p.PrincipalAmount,
		InterestAmount:   p.InterestAmount,
		RemainingBalance: p.RemainingBalance,
		PaymentDate:      p.PaymentDate,
		IsExtraPayment:   p.IsExtraPayment,
		CreatedAt:        p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ListPaymentsResponse wraps a payment listing.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int64              `json:"total"`
}

// ScheduleResponse wraps the reconciled schedule series and stats.
type ScheduleResponse struct {
	Entries []domain.ScheduleEntry `json:"entries"`
	Stats   domain.LoanStats       `json:"stats"`
}

// ScheduleFromDomain converts a reconciliation to a response.
func ScheduleFromDomain(rec *domain.Reconciliation) *ScheduleResponse {
	return &ScheduleResponse{
		Entries: rec.Entries,
		Stats:   rec.Stats,
	}
}

// ProjectionResponse wraps the theoretical payment plan.
type ProjectionResponse struct {
	MonthlyPayment decimal.Decimal          `json:"monthly_payment"`
	TotalInterest  decimal.Decimal          `json:"total_interest"`
	CapReached     bool                     `json:"cap_reached"`
	Entries        []domain.ProjectionEntry `json:"entries"`
}

// ProjectionFromDomain converts a projection to a response.
func ProjectionFromDomain(p *domain.Projection) *ProjectionResponse {
	return &ProjectionResponse{
		MonthlyPayment: p.MonthlyPayment,
		TotalInterest:  p.TotalInterest,
		CapReached:     p.CapReached,
		Entries:        p.Entries,
	}
}
