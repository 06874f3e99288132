package domain

// LoanType classifies a loan product. The set is closed: every type carries
// its capability flags here, so adding a type forces a decision about how it
// amortizes.
type LoanType string

const (
	LoanTypeMortgage   LoanType = "mortgage"
	LoanTypeAuto       LoanType = "auto"
	LoanTypePersonal   LoanType = "personal"
	LoanTypeStudent    LoanType = "student"
	LoanTypeCreditCard LoanType = "credit_card"
)

// LoanTypeInfo describes what a loan type requires from its terms.
type LoanTypeInfo struct {
	HasTerm             bool
	HasCollateral       bool
	NeedsMinimumPayment bool
}

var loanTypes = map[LoanType]LoanTypeInfo{
	LoanTypeMortgage:   {HasTerm: true, HasCollateral: true},
	LoanTypeAuto:       {HasTerm: true, HasCollateral: true},
	LoanTypePersonal:   {HasTerm: true},
	LoanTypeStudent:    {NeedsMinimumPayment: true},
	LoanTypeCreditCard: {NeedsMinimumPayment: true},
}

// Info returns the capability flags for the type.
func (t LoanType) Info() (LoanTypeInfo, bool) {
	info, ok := loanTypes[t]
	return info, ok
}

// Valid reports whether the type is a known loan type.
func (t LoanType) Valid() bool {
	_, ok := loanTypes[t]
	return ok
}

// AllLoanTypes returns every known loan type.
func AllLoanTypes() []LoanType {
	return []LoanType{
		LoanTypeMortgage,
		LoanTypeAuto,
		LoanTypePersonal,
		LoanTypeStudent,
		LoanTypeCreditCard,
	}
}
