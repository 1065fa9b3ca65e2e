// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package aims to standardise structured logging across services by
// exposing a single factory, New, that creates a *slog.Logger configured by
// a set of Option functions. These options allow you to:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that inject attributes pulled from a
//     context value (for example a request id) every time Handle is invoked.
//
// # Architecture
//
// Logger builds a decorated slog.Handler. First, New determines the concrete
// slog.Handler implementation (slog.NewTextHandler or slog.NewJSONHandler)
// based on the configured Format. It then wraps the handler with
// LogHandlerDecorator which is responsible for executing any registered
// ContextExtractor callbacks before delegating to the underlying handler.
//
// Helper constructors such as TenantID, CompanyID, Username and Error live in
// attr.go and keep attribute keys consistent across the middleware stages and
// the session service.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantkit/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithEnvironment(os.Getenv("APP_ENV"), "tenantkit"),
//	        logger.WithContextExtractors(
//	            scope.TenantLoggerExtractor(),
//	            scope.CompanyLoggerExtractor(),
//	        ),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.InfoContext(ctx, "login succeeded",
//	        logger.Username("alice"),
//	        logger.Duration(time.Since(start)),
//	    )
//	}
//
// # Configuration
//
// The behaviour of New can be tuned with a variety of Option helpers:
//
//   - WithEnvironment picks a level and format preset: development is text at
//     debug, staging and production are JSON at info.
//   - WithConfig applies LOG_LEVEL and LOG_FORMAT overrides loaded by pkg/config.
//   - WithFormat, WithLevel and WithOutput set single values.
//   - WithAttr attaches static attributes.
//   - WithContextExtractors injects attributes from the request context.
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation succeeded", logger.Error(err))
//
// without an additional nil check.
package logger
