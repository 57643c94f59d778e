package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine/internal/adapters"
)

// InsertStudent stores a new student and returns it with its generated id.
func (s Store) InsertStudent(ctx context.Context, student librarystore.Student) (librarystore.Student, error) {
	err := s.observe(ctx, operationInsertStudent, func(ctx context.Context) error {
		record := studentRecord(student)
		record[colIsDeleted] = false

		id, err := s.insertReturningID(ctx, s.db, operationInsertStudent, s.tables.Students, record)
		student.ID = id

		return err
	})

	return student, err
}

// UpdateStudent overwrites the mutable fields of an active student.
func (s Store) UpdateStudent(ctx context.Context, student librarystore.Student) error {
	return s.observe(ctx, operationUpdateStudent, func(ctx context.Context) error {
		update := s.builder().Update(s.tables.Students).Prepared(true).
			Set(studentRecord(student)).
			Where(goqu.C(colID).Eq(student.ID), s.notDeleted())

		rowsAffected, err := s.exec(ctx, s.db, operationUpdateStudent, update)
		if err != nil {
			return err
		}

		if rowsAffected == 0 {
			return librarystore.ErrRecordNotFound
		}

		return nil
	})
}

// SoftDeleteStudent flags a student as deleted.
func (s Store) SoftDeleteStudent(ctx context.Context, id int64) error {
	return s.observe(ctx, operationDeleteStudent, func(ctx context.Context) error {
		return s.softDelete(ctx, s.db, operationDeleteStudent, s.tables.Students, id)
	})
}

// StudentByID returns an active student, librarystore.ErrRecordNotFound if there is none.
func (s Store) StudentByID(ctx context.Context, id int64) (librarystore.Student, error) {
	var student librarystore.Student

	err := s.observe(ctx, operationStudentByID, func(ctx context.Context) error {
		var err error
		student, err = s.studentWhere(ctx, operationStudentByID, goqu.C(colID).Eq(id))

		return err
	})

	return student, err
}

// StudentByName returns the active student with exactly this name.
func (s Store) StudentByName(ctx context.Context, name string) (librarystore.Student, error) {
	var student librarystore.Student

	err := s.observe(ctx, operationStudentByName, func(ctx context.Context) error {
		var err error
		student, err = s.studentWhere(ctx, operationStudentByName, goqu.C(colName).Eq(name))

		return err
	})

	return student, err
}

// Students lists all active students ordered by id.
func (s Store) Students(ctx context.Context) ([]librarystore.Student, error) {
	var students []librarystore.Student

	err := s.observe(ctx, operationStudents, func(ctx context.Context) error {
		rows, err := s.query(ctx, s.db, operationStudents, s.selectStudents().Order(goqu.C(colID).Asc()))
		if err != nil {
			return err
		}

		students, err = scanAll(ctx, s, rows, scanStudent)
		s.recordRecordsRead(ctx, operationStudents, len(students))

		return err
	})

	return students, err
}

func (s Store) studentWhere(ctx context.Context, operation string, condition exp.Expression) (librarystore.Student, error) {
	rows, err := s.query(ctx, s.db, operation, s.selectStudents().Where(condition).Limit(1))
	if err != nil {
		return librarystore.Student{}, err
	}

	return scanOne(ctx, s, rows, scanStudent)
}

func (s Store) selectStudents() *goqu.SelectDataset {
	return s.from(s.tables.Students).
		Select(colID, colName, colAddress, colContactNo, colFaculty, colSemester, colIsDeleted).
		Where(s.notDeleted())
}

func studentRecord(student librarystore.Student) goqu.Record {
	return goqu.Record{
		colName:      student.Name,
		colAddress:   student.Address,
		colContactNo: student.ContactNo,
		colFaculty:   student.Faculty,
		colSemester:  student.Semester,
	}
}

func scanStudent(rows adapters.DBRows) (librarystore.Student, error) {
	var st librarystore.Student
	err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.ContactNo, &st.Faculty, &st.Semester, &st.IsDeleted)

	return st, err
}
