// Package model holds the value types the lwp3, spike, and jsontelemetry
// decoders all project into: ports, attached devices, and the aggregate
// device snapshot a hub.Hub publishes to subscribers.
package model

import "fmt"

// Port is an 8-bit device socket address. Values 0-5 are external ports
// A-F; values >= 50 are hub-internal virtual ports (LED, IMU, battery).
// Virtual ports synthesized by pairing two external ports carry an ID
// assigned by the hub, typically >= 0x10.
type Port uint8

// String renders ports 0-25 as letters A-Z and anything else as "Port(n)".
func (p Port) String() string {
	if p < 26 {
		return string(rune('A' + p))
	}
	return fmt.Sprintf("Port(%d)", uint8(p))
}

// Category classifies an attached device's device-type ID.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMotor
	CategorySensor
	CategoryLight
	CategoryHubInternal
)

func (c Category) String() string {
	switch c {
	case CategoryMotor:
		return "motor"
	case CategorySensor:
		return "sensor"
	case CategoryLight:
		return "light"
	case CategoryHubInternal:
		return "hub-internal"
	default:
		return "unknown"
	}
}

// AttachedDevice is the per-port record created on an attached or
// attached-virtual I/O event, replaced on re-attach, and removed on detach.
type AttachedDevice struct {
	Port       Port
	DeviceType uint16
	Category   Category
	Label      string
}
