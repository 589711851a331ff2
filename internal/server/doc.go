// Package server implements the two listeners behind cmd/legohub-sim: a
// stand-in hub that a real hub.Hub can dial exactly as it would dial a
// physical device over BLE or the accessory cable.
//
// # Listeners
//
// LinePort serves the accessory-cable transport: a plain TCP socket
// carrying \r/\n-delimited JSON lines, matching internal/transport's
// LineTransport on the client side.
//
// WSPort serves the BLE-shaped transport: an HTTP server upgrading every
// request to a WebSocket via gorilla/websocket, matching
// internal/transport's WSTransport on the client side. Binary WebSocket
// messages carry LWP3 frames; there is no GATT layer to emulate since the
// client already treats the whole connection as "the BLE service".
//
// # Scenario playback
//
// Each accepted connection replays one canned Scenario: a fixed sequence
// of frames or lines, spaced Scenario.Interval apart. Scenarios exist to
// exercise a hub.Hub end to end (attach, battery, telemetry) without
// physical hardware; see DefaultLWP3Scenario and DefaultSpikeJSONScenario.
//
// # Usage
//
//	srv, err := server.New(&server.Config{
//	    Host:     "",
//	    LinePort: 9001,
//	    WSPort:   9002,
//	    LogLevel: "info",
//	}, server.DefaultLWP3Scenario())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful shutdown
//
// Start blocks until SIGINT/SIGTERM, then closes both listeners and every
// tracked connection, waiting up to 10 seconds for in-flight handlers to
// return before giving up.
package server
