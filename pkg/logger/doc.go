// Package logger builds *slog.Logger values with functional options and
// injects request-scoped attributes stored in context.Context.
//
// New applies options over JSON output at info level on stdout and wraps the
// handler with LogHandlerDecorator, which runs every registered
// ContextExtractor for each record. Environment presets (WithDevelopment,
// WithStaging, WithProduction) pick format and level and add "service" and
// "env" attributes. NewFromConfig reads the same settings from Config.
//
// Attribute helpers in attr.go keep key names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//		logger.WithDevelopment("shop"),
//		logger.WithContextExtractors(session.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "cart updated", logger.Status(http.StatusOK))
//
// Library types default to NewNope, a logger that discards everything.
package logger
