// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while the handlers stay free of observability code.
//
// Wrappers are applied at wiring time:
//
//	coreHandler := returnborrowedunits.NewCommandHandler(engine)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[returnborrowedunits.Command](metricsCollector),
//		observable.WithCommandTracing[returnborrowedunits.Command](tracingCollector),
//		observable.WithCommandContextualLogging[returnborrowedunits.Command](contextualLogger),
//	)
//
// Rule violations (see rental.Violation) are expected outcomes: they are logged at warn level,
// counted per violation kind and reported with the status "violation", not "error".
package observable
