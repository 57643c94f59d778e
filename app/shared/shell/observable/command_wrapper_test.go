package observable_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/observable"
	"github.com/AntonStoeckl/library-management-api/librarystore"
	"github.com/AntonStoeckl/library-management-api/testutil/observability/testdoubles"
)

type mockCommand struct {
	value string
}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockHandler struct {
	result shell.HandlerResult[string]
	err    error
	calls  []mockCommand
	mu     sync.Mutex
}

func newMockHandler(result shell.HandlerResult[string], err error) *mockHandler {
	return &mockHandler{result: result, err: err}
}

func (h *mockHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult[string], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *mockHandler) GetCalls() []mockCommand {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]mockCommand(nil), h.calls...)
}

type spies struct {
	metrics *testdoubles.MetricsCollectorSpy
	tracing *testdoubles.TracingCollectorSpy
	logger  *testdoubles.ContextualLoggerSpy
}

func newCommandWrapper(t *testing.T, handler *mockHandler) (*observable.CommandWrapper[mockCommand, string], spies) {
	t.Helper()

	s := spies{
		metrics: testdoubles.NewMetricsCollectorSpy(true),
		tracing: testdoubles.NewTracingCollectorSpy(true),
		logger:  testdoubles.NewContextualLoggerSpy(true),
	}

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](s.metrics),
		observable.WithCommandTracing[mockCommand, string](s.tracing),
		observable.WithCommandContextualLogging[mockCommand, string](s.logger),
	)
	require.NoError(t, err)

	return wrapper, s
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult[string]{Value: "loan-1", RetryAttempts: 1, LastErrorType: "none"}
	handler := newMockHandler(expectedResult, nil)
	wrapper, s := newCommandWrapper(t, handler)
	command := mockCommand{value: "x"}

	// act
	result, err := wrapper.Handle(context.Background(), command)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	assert.Equal(t, []mockCommand{command}, handler.GetCalls())

	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert())
	assert.False(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).Assert())

	span, found := s.tracing.FindSpan(shell.SpanNameCommandHandle)
	require.True(t, found)
	assert.True(t, span.Finished)
	assert.Equal(t, "success", span.Status)
	assert.Equal(t, "TestCommand", span.StartAttributes["command_type"])

	assert.True(t, s.logger.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandStarted))
	assert.True(t, s.logger.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_BusinessRejection(t *testing.T) {
	// arrange
	rejection := core.BusinessRule(core.ReasonNoCopiesAvailable, core.MsgNoCopiesAvailable)
	handler := newMockHandler(shell.HandlerResult[string]{RetryAttempts: 1}, rejection)
	wrapper, s := newCommandWrapper(t, handler)

	// act
	_, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, rejection)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus("rejected").Assert())
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).Assert())

	span, _ := s.tracing.FindSpan(shell.SpanNameCommandHandle)
	assert.Equal(t, "rejected", span.Status)
	assert.Equal(t, "no_copies_available", span.EndAttributes[shell.LogAttrBusinessOutcome])

	assert.True(t, s.logger.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandRejected))
	assert.Empty(t, s.logger.Records(testdoubles.LevelError))
}

func Test_CommandWrapper_Handle_ErrorStatuses(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		status        string
		statusCounter string
	}{
		{"canceled", context.Canceled, shell.StatusCanceled, shell.CommandHandlerCanceledMetric},
		{"timeout", context.DeadlineExceeded, shell.StatusTimeout, shell.CommandHandlerTimeoutMetric},
		{
			"concurrency conflict",
			core.Internal(librarystore.ErrConcurrencyConflict),
			shell.StatusConcurrencyConflict,
			shell.CommandHandlerConcurrencyConflictMetric,
		},
		{"unexpected", errors.New("boom"), shell.StatusError, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			wrapper, s := newCommandWrapper(t, newMockHandler(shell.HandlerResult[string]{}, tc.err))

			// act
			_, err := wrapper.Handle(context.Background(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus(tc.status).Assert())
			if tc.statusCounter != "" {
				assert.True(t, s.metrics.HasCounterRecordForMetric(tc.statusCounter).Assert())
			}

			record, found := s.logger.FindLog(testdoubles.LevelError, shell.LogMsgCommandFailed)
			require.True(t, found)
			status, _ := record.Attr(shell.LogAttrStatus)
			assert.Equal(t, tc.status, status)
		})
	}
}

func Test_CommandWrapper_Handle_RecordsRetryMetadata(t *testing.T) {
	// arrange
	result := shell.HandlerResult[string]{
		RetryAttempts:    6,
		TotalRetryDelay:  300 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}
	wrapper, s := newCommandWrapper(t, newMockHandler(result, librarystore.ErrConcurrencyConflict))

	// act
	_, _ = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("attempt_number", "5").
		WithErrorType("concurrency_conflict").
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).Assert())
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).Assert())
}

func Test_CommandWrapper_Handle_WithPlainLoggerOnly(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy(true)
	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		newMockHandler(shell.HandlerResult[string]{}, nil),
		observable.WithCommandLogging[mockCommand, string](logger),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	record, found := logger.FindLog(testdoubles.LevelInfo, shell.LogMsgCommandCompleted)
	require.True(t, found)
	assert.Nil(t, record.Context)
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult[string]{Value: "ok"}, nil)
	wrapper, err := observable.NewCommandWrapper[mockCommand, string](handler)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "ok", result.Value)
}
