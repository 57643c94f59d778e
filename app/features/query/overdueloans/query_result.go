package overdueloans

import "github.com/AntonStoeckl/library-management-api/app/shared/core"

// OverdueLoans is the query result.
type OverdueLoans struct {
	Loans []core.LoanSummary `json:"loans"`
	Count int                `json:"count"`
}
