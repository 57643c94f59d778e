package activeloans

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

// ActiveLoans is the query result.
type ActiveLoans struct {
	Loans []core.LoanSummary `json:"loans"`
	Count int                `json:"count"`
}
