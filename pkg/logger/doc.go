// Package logger builds configured slog loggers for the form engine and the
// applications embedding it.
//
// New creates a *slog.Logger from a set of Option functions:
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter select the output format
//   - WithLevel sets the minimum level
//   - WithAttr attaches static attributes to every record
//   - WithDevelopment / WithProduction apply sensible per-environment defaults
//
// Helper constructors in attr.go keep attribute naming consistent: FormID,
// Field, Rule, Mode, Attempt for engine-side records, plus the generic
// Group, Error, Errors, Duration, Component, and Event.
//
//	log := logger.New(logger.WithDevelopment("signup-form"))
//	logger.SetAsDefault(log)
//
//	log.Info("field validated",
//	    logger.Field("email"),
//	    logger.Duration(time.Since(start)),
//	)
//
// Error and Errors produce attributes only for non-nil errors, so
// log.Info("done", logger.Error(err)) needs no nil check.
//
// The engine itself logs through whatever *slog.Logger it is handed; this
// package is the convenient way to construct one.
package logger
