// Package hub is the transport-agnostic protocol engine: given an already
// open transport.Adapter, it selects a wire protocol (LWP3 over BLE, SPIKE
// Prime binary, or SPIKE Prime JSON over the accessory cable), decodes
// inbound frames into a model.Snapshot, and encodes outbound Commands back
// onto the wire.
//
// # Concurrency model
//
// A Hub owns exactly one goroutine (run). Every state mutation --
// connecting, decoding a frame, applying a battery reading, encoding a
// send -- happens on that goroutine. Connect, Disconnect, and Send are
// called from arbitrary goroutines but only ever post a closure onto an
// internal channel and block for its result; State and Snapshot read
// directly under a mutex without going through the queue, since they
// never mutate anything. This gets the spec's "sends are strictly
// ordered with respect to other sends" guarantee for free: every Send
// becomes one more closure in the same FIFO queue as everything else.
//
// # Protocol selection
//
// Selection happens once, right after transport.EventServicesDiscovered:
// a RoleLine characteristic always wins (the accessory cable only ever
// speaks SPIKE JSON); otherwise the SPIKE Prime GATT service wins over
// plain LWP3 if both are advertised, and the legacy 0xFEED service ID is
// accepted as an LWP3 alias. No usable service published fires
// TopicNoUsableProtocol and moves the hub toward disconnecting.
//
// # Battery dampening
//
// The raw percentage is always stored in the snapshot. An event fires on
// the first nonzero reading, then at most once per 120 seconds or
// immediately on any change from the last emitted value, whichever comes
// first -- this keeps a slowly-draining battery from spamming listeners
// without ever silently dropping a real jump.
package hub
