package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
)

func Test_HandleWithRetry_ReturnsValueOfLastAttempt(t *testing.T) {
	// arrange
	attempts := 0
	fn := func(_ context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "discarded", librarystore.ErrConcurrencyConflict
		}

		return "stored", nil
	}

	// act
	result, err := shell.HandleWithRetry(context.Background(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "stored", result.Value)
	assert.Equal(t, 2, result.RetryAttempts)
	assert.Equal(t, "none", result.LastErrorType)
}

func Test_HandleWithRetry_ErrorResultHasZeroValue(t *testing.T) {
	// arrange
	boom := errors.New("boom")
	fn := func(_ context.Context) (int, error) {
		return 42, boom
	}

	// act
	result, err := shell.HandleWithRetry(context.Background(), fn)

	// assert
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, result.Value)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.Equal(t, "other", result.LastErrorType)
	assert.False(t, result.RetriesExhausted)
}
