// Package logger provides a thin factory around Go's slog package adding
// functional options for configuration and helper attribute constructors.
//
// The single factory – New – creates a *slog.Logger configured by a set of
// Option functions controlling output format (text or json), minimum level,
// destination, and default attributes applied to every record.
//
// Helper constructors such as Error, Component, StatusCode, etc. live in
// attr.go and keep attribute naming consistent across the codebase.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("reservations-web"),
//	)
//	logger.SetAsDefault(log)
//
//	log.Info("notifications loaded",
//	    logger.Component("notifications"),
//	)
package logger
