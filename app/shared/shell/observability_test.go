package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/testutil/observability/testdoubles"
)

func Test_StatusFromError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, shell.StatusSuccess},
		{"canceled", context.Canceled, shell.StatusCanceled},
		{"timeout", core.Internal(context.DeadlineExceeded), shell.StatusTimeout},
		{"conflict", core.Internal(librarystore.ErrConcurrencyConflict), shell.StatusConcurrencyConflict},
		{"business rule", core.BusinessRule(core.ReasonNoCopiesAvailable, core.MsgNoCopiesAvailable), shell.StatusRejected},
		{"not found", core.NotFound("Student", 7), shell.StatusRejected},
		{"internal", core.Internal(errors.New("boom")), shell.StatusError},
		{"plain", errors.New("boom"), shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shell.StatusFromError(tc.err))
		})
	}
}

func Test_BusinessOutcome_PrefersReasonOverCode(t *testing.T) {
	assert.Equal(t, "duplicate_checkout", shell.BusinessOutcome(core.BusinessRule(core.ReasonDuplicateCheckout, "x")))
	assert.Equal(t, "not_found", shell.BusinessOutcome(core.NotFound("Book", 1)))
	assert.Equal(t, "error", shell.BusinessOutcome(errors.New("boom")))
}

func Test_RecordCommandMetrics_RejectedGetsItsOwnCounter(t *testing.T) {
	// arrange
	metrics := testdoubles.NewContextualMetricsCollectorSpy(true)

	// act
	shell.RecordCommandMetrics(context.Background(), metrics, "CheckoutBook", shell.StatusRejected, time.Millisecond)

	// assert
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).WithStatus("rejected").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus("rejected").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).
		WithLabel("command_type", "CheckoutBook").
		Assert())
	assert.Equal(t, 3, metrics.ContextCallCount())
}

func Test_RecordQueryMetrics_SuccessHasNoStatusCounter(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy(true)

	// act
	shell.RecordQueryMetrics(context.Background(), metrics, "ActiveLoans", shell.StatusSuccess, time.Millisecond)

	// assert
	assert.Equal(t, 2, metrics.GetTotalRecordCount())
}

func Test_LogCommandError_RejectionLogsAtInfo(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy(true)
	err := core.BusinessRule(core.ReasonAlreadyReturned, core.MsgAlreadyReturned)

	// act
	shell.LogCommandError(context.Background(), nil, logger, "ReturnBook", err, time.Millisecond)

	// assert
	record, found := logger.FindLog(testdoubles.LevelInfo, shell.LogMsgCommandRejected)
	assert.True(t, found)
	outcome, _ := record.Attr(shell.LogAttrBusinessOutcome)
	assert.Equal(t, "already_returned", outcome)
	assert.Empty(t, logger.Records(testdoubles.LevelError))
}

func Test_LogQueryError_UnexpectedFailureLogsAtErrorWithPlainLogger(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy(true)

	// act
	shell.LogQueryError(context.Background(), logger, nil, "ActiveLoans", errors.New("boom"), time.Millisecond)

	// assert
	record, found := logger.FindLog(testdoubles.LevelError, shell.LogMsgQueryFailed)
	assert.True(t, found)
	assert.Nil(t, record.Context)
	status, _ := record.Attr(shell.LogAttrStatus)
	assert.Equal(t, shell.StatusError, status)
}
