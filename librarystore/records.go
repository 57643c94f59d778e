package librarystore

import "time"

// Author is the stored author row.
type Author struct {
	ID        int64
	Name      string
	IsDeleted bool
}

// Book is the stored book row including its inventory counters.
type Book struct {
	ID              int64
	Title           string
	AuthorID        int64
	Publisher       string
	Barcode         string
	ISBN            string
	SubjectGenre    string
	PublicationDate *time.Time
	TotalCopies     int
	AvailableCopies int
	IsDeleted       bool
}

// CopiesOnLoan is the number of copies currently lent out.
func (b Book) CopiesOnLoan() int {
	return b.TotalCopies - b.AvailableCopies
}

// Student is the stored student row.
type Student struct {
	ID        int64
	Name      string
	Address   string
	ContactNo string
	Faculty   string
	Semester  string
	IsDeleted bool
}

// Loan is the stored loan (issue) row.
type Loan struct {
	ID         int64
	BookID     int64
	StudentID  int64
	IssueDate  time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	IsReturned bool
	IsDeleted  bool
}

// LoanDetails is a Loan joined with the title of its book and the name of its student.
// BookTitle and StudentName are empty when the referenced row no longer exists.
type LoanDetails struct {
	Loan
	BookTitle   string
	StudentName string
}

// LoanFilter narrows loan listings. Zero values mean "no restriction".
type LoanFilter struct {
	BookID     int64
	StudentID  int64
	ActiveOnly bool
}

// User is a stored API user.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
