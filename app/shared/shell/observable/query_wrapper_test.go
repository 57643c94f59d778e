package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/observable"
	"github.com/AntonStoeckl/library-management-api/testutil/observability/testdoubles"
)

type mockQuery struct{}

func (q mockQuery) QueryType() string {
	return "TestQuery"
}

type mockQueryHandler struct {
	result []int
	err    error
}

func (h mockQueryHandler) Handle(_ context.Context, _ mockQuery) ([]int, error) {
	return h.result, h.err
}

func newQueryWrapper(t *testing.T, handler mockQueryHandler) (*observable.QueryWrapper[mockQuery, []int], spies) {
	t.Helper()

	s := spies{
		metrics: testdoubles.NewMetricsCollectorSpy(true),
		tracing: testdoubles.NewTracingCollectorSpy(true),
		logger:  testdoubles.NewContextualLoggerSpy(true),
	}

	wrapper, err := observable.NewQueryWrapper[mockQuery, []int](
		handler,
		observable.WithQueryMetrics[mockQuery, []int](s.metrics),
		observable.WithQueryTracing[mockQuery, []int](s.tracing),
		observable.WithQueryContextualLogging[mockQuery, []int](s.logger),
	)
	require.NoError(t, err)

	return wrapper, s
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	wrapper, s := newQueryWrapper(t, mockQueryHandler{result: []int{1, 2}})

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, result)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel("query_type", "TestQuery").
		WithStatus("success").
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).Assert())

	span, found := s.tracing.FindSpan(shell.SpanNameQueryHandle)
	require.True(t, found)
	assert.Equal(t, "success", span.Status)

	assert.True(t, s.logger.HasLog(testdoubles.LevelInfo, shell.LogMsgQueryStarted))
	assert.True(t, s.logger.HasLog(testdoubles.LevelInfo, shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_NotFoundIsRejection(t *testing.T) {
	// arrange
	wrapper, s := newQueryWrapper(t, mockQueryHandler{err: core.NotFound("Loan", 42)})

	// act
	_, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.True(t, core.IsKind(err, core.KindNotFound))
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.QueryHandlerRejectedMetric).Assert())
	record, found := s.logger.FindLog(testdoubles.LevelInfo, shell.LogMsgQueryRejected)
	require.True(t, found)
	outcome, _ := record.Attr(shell.LogAttrBusinessOutcome)
	assert.Equal(t, "not_found", outcome)
}

func Test_QueryWrapper_Handle_Canceled(t *testing.T) {
	// arrange
	wrapper, s := newQueryWrapper(t, mockQueryHandler{err: context.Canceled})

	// act
	_, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.QueryHandlerCanceledMetric).Assert())
	assert.True(t, s.logger.HasLog(testdoubles.LevelError, shell.LogMsgQueryFailed))
}

func Test_QueryWrapper_Handle_UnexpectedError(t *testing.T) {
	// arrange
	boom := errors.New("boom")
	wrapper, s := newQueryWrapper(t, mockQueryHandler{err: boom})

	// act
	_, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, boom)
	span, _ := s.tracing.FindSpan(shell.SpanNameQueryHandle)
	assert.Equal(t, "error", span.Status)
	assert.Equal(t, "boom", span.EndAttributes[shell.LogAttrError])
}
