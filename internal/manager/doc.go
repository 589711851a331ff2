// Package manager tracks every hub identifier observed by an external
// scanner (BLE or mDNS), exposes them sorted by identifier, and evicts
// ones that have gone BLE-advertisement-absent for too long while not
// currently connected.
//
// A Manager owns its own goroutine the same way hub.Hub does: Observe,
// MarkConnected, MarkNoProtocol, and List all post a closure onto an
// internal action channel and block for the result, so the hub map is
// touched only by the run loop.
package manager
