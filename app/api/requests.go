package api

import "time"

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createAuthorRequest struct {
	AuthorName string `json:"authorName"`
}

type updateAuthorRequest struct {
	NewAuthorName *string `json:"newAuthorName"`
}

type createBookRequest struct {
	Title           string     `json:"title"`
	AuthorID        int64      `json:"authorId"`
	Publisher       string     `json:"publisher"`
	Barcode         string     `json:"barcode"`
	ISBN            string     `json:"isbn"`
	SubjectGenre    string     `json:"subjectGenre"`
	PublicationDate *time.Time `json:"publicationDate"`
	TotalCopies     *int       `json:"totalCopies"`
}

type updateBookRequest struct {
	NewTitle           *string    `json:"newTitle"`
	NewAuthorID        *int64     `json:"newAuthorId"`
	NewPublisher       *string    `json:"newPublisher"`
	NewBarcode         *string    `json:"newBarcode"`
	NewISBN            *string    `json:"newIsbn"`
	NewSubjectGenre    *string    `json:"newSubjectGenre"`
	NewPublicationDate *time.Time `json:"newPublicationDate"`
	NewTotalCopies     *int       `json:"newTotalCopies"`

	ClearPublicationDate bool `json:"clearPublicationDate"`
}

type createStudentRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	ContactNo string `json:"contactNo"`
	Faculty   string `json:"faculty"`
	Semester  string `json:"semester"`
}

type updateStudentRequest struct {
	NewName      *string `json:"newName"`
	NewAddress   *string `json:"newAddress"`
	NewContactNo *string `json:"newContactNo"`
	NewFaculty   *string `json:"newFaculty"`
	NewSemester  *string `json:"newSemester"`
}

type checkoutRequest struct {
	BookID     int64 `json:"bookId"`
	StudentID  int64 `json:"studentId"`
	BorrowDays *int  `json:"borrowDays"`
}
