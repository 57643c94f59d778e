// Package observable provides decorators that instrument command and query handlers with
// metrics, tracing and logging while the handlers themselves stay pure business logic.
//
// The wrappers are applied at wiring time, which keeps the composition explicit:
//
//	coreHandler := checkoutbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[checkoutbook.Command, checkoutbook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[checkoutbook.Command, checkoutbook.Result](metricsCollector),
//		observable.WithCommandTracing[checkoutbook.Command, checkoutbook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[checkoutbook.Command, checkoutbook.Result](logger),
//	)
//
// Every option is optional. Business rejections (a core.AppError of any kind but Internal) are
// reported with status "rejected" and logged at info, unexpected failures at error.
package observable
