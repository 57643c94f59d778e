package authors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/features/catalog/authors"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	. "github.com/AntonStoeckl/library-management-api/testutil/helper/storewrapper" //nolint:revive
)

func ptr(s string) *string { return &s }

func Test_CreateHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := authors.NewCreateHandler(store)
	name := UniqueName("Ursula")

	// act
	result, err := handler.Handle(ctx, authors.BuildCreateCommand(" "+name+" "))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Author created successfully!", result.Value.Message)
	assert.Equal(t, name, result.Value.Author.AuthorName)

	stored, err := store.AuthorByID(ctx, result.Value.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)
}

func Test_CreateHandler_Handle_Error(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := authors.NewCreateHandler(store)
	existing := GivenAuthor(t, store)

	testCases := []struct {
		name string
		kind core.Kind
		cmd  authors.CreateCommand
	}{
		{name: "blank name", kind: core.KindValidation, cmd: authors.BuildCreateCommand("  ")},
		{name: "duplicate name", kind: core.KindConflict, cmd: authors.BuildCreateCommand(existing.Name)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := handler.Handle(context.Background(), tc.cmd)

			// assert
			assert.True(t, core.IsKind(err, tc.kind), "unexpected error: %v", err)
		})
	}
}

func Test_UpdateHandler_Handle_Rename(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := authors.NewUpdateHandler(store)
	author := GivenAuthor(t, store)
	newName := UniqueName("Octavia")

	// act
	result, err := handler.Handle(ctx, authors.BuildUpdateCommand(author.ID, ptr(newName)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, newName, result.Value.UpdatedAuthor.AuthorName)

	stored, err := store.AuthorByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, stored.Name)
}

func Test_UpdateHandler_Handle_SameNameAndAbsentFieldAreNoConflict(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := authors.NewUpdateHandler(store)
	author := GivenAuthor(t, store)

	// act
	_, sameErr := handler.Handle(context.Background(), authors.BuildUpdateCommand(author.ID, ptr(author.Name)))
	result, absentErr := handler.Handle(context.Background(), authors.BuildUpdateCommand(author.ID, nil))

	// assert
	assert.NoError(t, sameErr)
	require.NoError(t, absentErr)
	assert.Equal(t, author.Name, result.Value.UpdatedAuthor.AuthorName)
}

func Test_UpdateHandler_Handle_Error(t *testing.T) {
	// setup
	store := NewStore(t)
	handler := authors.NewUpdateHandler(store)
	author := GivenAuthor(t, store)
	other := GivenAuthor(t, store)

	testCases := []struct {
		name string
		kind core.Kind
		cmd  authors.UpdateCommand
	}{
		{name: "unknown author", kind: core.KindNotFound, cmd: authors.BuildUpdateCommand(999999, ptr("x"))},
		{name: "blank name", kind: core.KindValidation, cmd: authors.BuildUpdateCommand(author.ID, ptr(""))},
		{name: "name of another author", kind: core.KindConflict, cmd: authors.BuildUpdateCommand(author.ID, ptr(other.Name))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := handler.Handle(context.Background(), tc.cmd)

			// assert
			assert.True(t, core.IsKind(err, tc.kind), "unexpected error: %v", err)
		})
	}
}

func Test_DeleteHandler_Handle_SoftDeletes(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	handler := authors.NewDeleteHandler(store)
	author := GivenAuthor(t, store)

	// act
	result, err := handler.Handle(ctx, authors.BuildDeleteCommand(author.ID))
	_, secondErr := handler.Handle(ctx, authors.BuildDeleteCommand(author.ID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Author deleted successfully!", result.Value.Message)
	assert.True(t, core.IsKind(secondErr, core.KindNotFound))

	_, err = authors.NewByIDQueryHandler(store).Handle(ctx, authors.BuildByIDQuery(author.ID))
	assert.True(t, core.IsKind(err, core.KindNotFound))
}

func Test_CreateHandler_Handle_NameOfDeletedAuthorIsFree(t *testing.T) {
	// setup
	ctx := context.Background()
	store := NewStore(t)
	author := GivenAuthor(t, store)
	require.NoError(t, store.SoftDeleteAuthor(ctx, author.ID))

	// act
	result, err := authors.NewCreateHandler(store).Handle(ctx, authors.BuildCreateCommand(author.Name))

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, author.ID, result.Value.AuthorID)
}
