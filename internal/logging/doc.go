// Package logging provides structured logging for the hub protocol engine.
//
// This package wraps the zap logger with convenience functions for the
// logging patterns used throughout the engine. It provides both general
// logging functions and specialized functions for hub/frame-specific
// needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, frame decoding)
//   - Info: Normal operations (state transitions, protocol selection)
//   - Warn: Non-fatal issues (dropped malformed frames)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("hub connected",
//	    zap.String("hub_id", "AA:BB:CC:DD:EE:FF"),
//	    zap.String("protocol", "lwp3-ble"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogHubState(hubID, "connecting", "connected")
//	logging.LogProtocolSelected(hubID, "spike-binary")
//	logging.LogFrame(hubID, "inbound", "lwp3-ble", frame)
//	logging.LogDroppedFrame(hubID, "lwp3-ble", "declared length exceeds buffer")
//	logging.LogDeviceEvent(hubID, "A", "attached")
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Logging is silent by default unless a level is set via Initialize or the
// LEGOHUB_LOG_LEVEL environment variable.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
