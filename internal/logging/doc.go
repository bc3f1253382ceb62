// Package logging provides structured logging utilities for the mcp-eks application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Credential masking (bearer tokens are never logged directly)
//   - Host/URL sanitization for security
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "list_pods")
//	logger.Info("listing pods",
//	    logging.Cluster("prod-cluster"),
//	    logging.Namespace("default"))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("provisioned credentials",
//	    logging.Host(endpoint),
//	    slog.String("token", logging.SanitizeToken(token)))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Cluster endpoint URLs have IP addresses redacted to prevent topology leakage
//   - Credentials and tokens are never logged directly
package logging
