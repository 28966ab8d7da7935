package ai

import "sync/atomic"

// debugLoggingEnabled guards per-tick AI debug logs.
// Set once from main after the log level is parsed.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-tick AI debug logs.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-tick AI debug logs are enabled.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("target acquired", "target", t.ObjectID())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
