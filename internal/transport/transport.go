// Package transport defines the byte-transport contract the hub runtime
// consumes, plus two reference adapters (WebSocket-backed, standing in for
// BLE GATT, and a line-oriented net.Conn adapter for the accessory
// stream). The runtime never depends on either adapter directly -- only
// on the Adapter interface below -- so a real BLE GATT library could be
// substituted without touching internal/hub.
package transport

import "context"

// CharacteristicRole hints at how a discovered characteristic tag should
// be used.
type CharacteristicRole int

const (
	RoleWrite CharacteristicRole = iota
	RoleNotify
	RoleLine
)

// Characteristic is one opaque, transport-assigned tag with a role hint,
// as reported by ServicesDiscovered. Service is the GATT service UUID (or
// the sentinel "line" for the accessory line transport) the runtime uses
// to select a protocol; Tag is the characteristic used for Write/
// Subscribe calls.
type Characteristic struct {
	Service string
	Tag     string
	Role    CharacteristicRole
}

// WriteMode selects whether a write expects a peer acknowledgement.
type WriteMode int

const (
	WithResponse WriteMode = iota
	WithoutResponse
)

// Event is the tagged union of upward notifications a transport delivers
// to the runtime. Exactly one field is meaningful per Kind.
type Event struct {
	Kind EventKind

	Services        []Characteristic // ServicesDiscovered
	Frame           []byte           // FrameReceived
	FrameTag        string           // FrameReceived
	Line            []byte           // LineReceived
	DisconnectReason string          // Disconnected, optional
	RSSI            int16            // RssiUpdate
}

// EventKind enumerates the upward event types a transport may deliver.
type EventKind int

const (
	EventConnected EventKind = iota
	EventServicesDiscovered
	EventFrameReceived
	EventLineReceived
	EventDisconnected
	EventRSSIUpdate
)

// Adapter is the external collaborator that provides byte-level
// connectivity (a BLE GATT characteristic or a line-oriented accessory
// stream) to the runtime. The runtime never scans, pairs, or discovers
// devices itself -- it only ever consumes an already-connected Adapter.
type Adapter interface {
	Open(ctx context.Context) error
	Close() error

	// Events returns the channel the runtime reads upward events from.
	// The adapter closes this channel after delivering a final
	// EventDisconnected.
	Events() <-chan Event

	Write(ctx context.Context, data []byte, tag string, mode WriteMode) error
	Subscribe(ctx context.Context, tag string) error
	ReadRSSI(ctx context.Context) error
}
