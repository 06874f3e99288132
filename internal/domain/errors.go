package domain

import "errors"

var (
	// Loan errors
	ErrInvalidLoan  = errors.New("loan has no meaningful amortization")
	ErrInvalidTerm  = errors.New("fixed-term calculation requires a positive term")
	ErrInvalidType  = errors.New("unknown loan type")
	ErrLoanNotFound = errors.New("loan not found")

	// Payment errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSplitMismatch     = errors.New("principal and interest portions do not sum to amount")
	ErrFuturePaymentDate = errors.New("payment date cannot be in the future")
	ErrPaymentNotFound   = errors.New("payment not found")
)
