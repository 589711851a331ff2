// Package monitor implements the bubbletea dashboard driven by
// cmd/legohub-monitor. It owns no transport or protocol logic of its
// own: it subscribes to a *hub.Hub's published events and renders
// whatever Snapshot the hub last reached.
package monitor
