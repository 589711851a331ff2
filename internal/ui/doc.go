// Package ui provides terminal UI components for the legohub-monitor CLI.
//
// This package uses Bubble Tea and Lipgloss to render the live hub
// dashboard: a header banner, section boxes per device category, and
// gauges for battery/motor readings.
//
// # Architecture
//
// The UI package provides three component types:
//
//   - Header: banner showing the hub identifier, connection state, and
//     protocol in use
//   - Gauge: a single labeled percentage bar (battery level, motor power)
//   - Style helpers: the shared color palette and box styles the
//     dashboard model composes directly in its View
//
// Unlike a "run once and exit" CLI, the monitor dashboard is a long-running
// tea.Program that re-renders on every hub.Event it receives, so these
// components are designed to be cheap to re-render rather than to track
// multi-step completion.
//
// # Logging Integration
//
// This package expects logging to be controlled via the LEGOHUB_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the dashboard to own the terminal cleanly.
package ui
