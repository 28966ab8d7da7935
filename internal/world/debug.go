package world

import "sync/atomic"

// debugLoggingEnabled guards per-step debug logs of the simulation.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables per-step debug logs.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-step debug logs are enabled.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
