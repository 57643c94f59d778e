package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine/internal/adapters"
)

// InsertUser stores a new API user. A taken username fails with librarystore.ErrDuplicateKey.
func (s Store) InsertUser(ctx context.Context, user librarystore.User) (librarystore.User, error) {
	err := s.observe(ctx, operationInsertUser, func(ctx context.Context) error {
		id, err := s.insertReturningID(ctx, s.db, operationInsertUser, s.tables.Users, goqu.Record{
			colUsername:     user.Username,
			colPasswordHash: user.PasswordHash,
			colCreatedAt:    user.CreatedAt.UTC(),
		})
		user.ID = id

		return err
	})

	return user, err
}

// UserByUsername returns the user with this username.
func (s Store) UserByUsername(ctx context.Context, username string) (librarystore.User, error) {
	var user librarystore.User

	err := s.observe(ctx, operationUserByUsername, func(ctx context.Context) error {
		var err error
		user, err = s.userWhere(ctx, operationUserByUsername, goqu.C(colUsername).Eq(username))

		return err
	})

	return user, err
}

// UserByID returns the user with this id.
func (s Store) UserByID(ctx context.Context, id int64) (librarystore.User, error) {
	var user librarystore.User

	err := s.observe(ctx, operationUserByID, func(ctx context.Context) error {
		var err error
		user, err = s.userWhere(ctx, operationUserByID, goqu.C(colID).Eq(id))

		return err
	})

	return user, err
}

func (s Store) userWhere(ctx context.Context, operation string, condition exp.Expression) (librarystore.User, error) {
	query := s.from(s.tables.Users).
		Select(colID, colUsername, colPasswordHash, colCreatedAt).
		Where(condition).
		Limit(1)

	rows, err := s.query(ctx, s.db, operation, query)
	if err != nil {
		return librarystore.User{}, err
	}

	return scanOne(ctx, s, rows, scanUser)
}

func scanUser(rows adapters.DBRows) (librarystore.User, error) {
	var u librarystore.User
	err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	u.CreatedAt = u.CreatedAt.UTC()

	return u, err
}
