package hub

import "fmt"

// State is the hub connection lifecycle: disconnected -> connecting ->
// connected -> disconnecting -> disconnected, cyclic except on teardown.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Protocol is which wire protocol the runtime bound to after service
// discovery.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolLwp3BLE
	ProtocolSpikeBinary
	ProtocolSpikeJSON
)

func (p Protocol) String() string {
	switch p {
	case ProtocolLwp3BLE:
		return "lwp3-ble"
	case ProtocolSpikeBinary:
		return "spike-binary"
	case ProtocolSpikeJSON:
		return "spike-json"
	default:
		return "none"
	}
}
