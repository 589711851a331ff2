package hub

import "github.com/muurk/legohub/internal/model"

// Topic names the kind of change a published Event carries.
type Topic int

const (
	TopicStateChanged Topic = iota
	TopicAttachedDevicesChanged
	TopicDeviceDataChanged
	TopicBatteryChanged
	TopicRSSIChanged
	TopicNoUsableProtocol
	TopicNameChanged
	TopicDiagnostic
)

func (t Topic) String() string {
	switch t {
	case TopicStateChanged:
		return "state-changed"
	case TopicAttachedDevicesChanged:
		return "attached-devices-changed"
	case TopicDeviceDataChanged:
		return "device-data-changed"
	case TopicBatteryChanged:
		return "battery-changed"
	case TopicRSSIChanged:
		return "rssi-changed"
	case TopicNoUsableProtocol:
		return "no-usable-protocol"
	case TopicNameChanged:
		return "name-changed"
	default:
		return "diagnostic"
	}
}

// Event is one published change notification. Only the field matching
// Topic is meaningful.
type Event struct {
	Topic     Topic
	State     State
	Snapshot  model.Snapshot
	RSSI      int16
	Name      string
	Message   string // TopicDiagnostic / console text
}

// Listener receives published events. It must not block for long: the
// runtime calls listeners synchronously from its single work queue.
type Listener func(Event)
