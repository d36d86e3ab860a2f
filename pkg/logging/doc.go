// Package logging configures structured logging for nasdeck.
//
// It wraps log/slog so that every component logs the same way:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//	logger.Info("synced resources", "added", 3)
//
// Components take a *slog.Logger through an option and fall back to Nop.
// The organizer core never logs; only the store, provider, service and CLI
// layers do.
//
// When a log file is configured, Open tees records to stderr and to the file
// through a MultiHandler. The file always receives JSON.
package logging
