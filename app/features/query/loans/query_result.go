package loans

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

// Loans is the result of a list Query.
type Loans struct {
	Loans []core.LoanSummary `json:"loans"`
	Count int                `json:"count"`
}
