package lwp3

import (
	"fmt"

	"github.com/muurk/legohub/internal/model"
)

// MessageType is the byte immediately after the hub-ID byte in every LWP3
// frame.
type MessageType uint8

const (
	MsgHubProperty          MessageType = 0x01
	MsgHubAction            MessageType = 0x02
	MsgHubAlert             MessageType = 0x03
	MsgAttachedIO           MessageType = 0x04
	MsgPortInformation      MessageType = 0x43
	MsgPortModeInformation  MessageType = 0x44
	MsgPortValueSingle      MessageType = 0x45
	MsgPortValueCombined    MessageType = 0x46
	MsgPortInputFormat      MessageType = 0x47
	MsgPortOutputFeedback   MessageType = 0x82
	MsgPortOutputCommand    MessageType = 0x81
	MsgGenericError         MessageType = 0x05
)

var messageTypeNames = map[MessageType]string{
	MsgHubProperty:         "HubProperty",
	MsgHubAction:           "HubAction",
	MsgHubAlert:            "HubAlert",
	MsgAttachedIO:          "AttachedIO",
	MsgPortInformation:     "PortInformation",
	MsgPortModeInformation: "PortModeInformation",
	MsgPortValueSingle:     "PortValueSingle",
	MsgPortValueCombined:   "PortValueCombined",
	MsgPortInputFormat:     "PortInputFormat",
	MsgPortOutputFeedback:  "PortOutputFeedback",
	MsgPortOutputCommand:   "PortOutputCommand",
	MsgGenericError:        "GenericError",
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MessageType(0x%02X)", uint8(t))
}

// HubProperty identifies a hub-property sub-type (battery voltage, RSSI,
// firmware version, and so on). Values pass through even when unknown to
// this catalog.
type HubProperty uint8

const (
	PropertyBatteryVoltage HubProperty = 0x06
	PropertyRSSI           HubProperty = 0x05
	PropertyFirmwareVer    HubProperty = 0x03
)

// HubPropertyOperation is the second byte of a hub-property message.
type HubPropertyOperation uint8

const (
	OpSet               HubPropertyOperation = 0x01
	OpEnableUpdates     HubPropertyOperation = 0x02
	OpDisableUpdates    HubPropertyOperation = 0x03
	OpReset             HubPropertyOperation = 0x04
	OpRequestUpdate     HubPropertyOperation = 0x05
	OpUpdate            HubPropertyOperation = 0x06
)

// HubAction is the single payload byte of a hub-action message.
type HubAction uint8

const (
	ActionSwitchOff      HubAction = 0x01
	ActionDisconnect     HubAction = 0x02
	ActionVCCPortControlOn  HubAction = 0x03
	ActionVCCPortControlOff HubAction = 0x04
)

var hubActionNames = map[HubAction]string{
	ActionSwitchOff:         "switch-off",
	ActionDisconnect:        "disconnect",
	ActionVCCPortControlOn:  "vcc-port-control-on",
	ActionVCCPortControlOff: "vcc-port-control-off",
}

// IsKnown reports whether a is a recognised hub action.
func (a HubAction) IsKnown() bool {
	_, ok := hubActionNames[a]
	return ok
}

// AttachedIOEvent is the event byte of an attached-I/O message.
type AttachedIOEvent uint8

const (
	IOEventDetached        AttachedIOEvent = 0x00
	IOEventAttached        AttachedIOEvent = 0x01
	IOEventAttachedVirtual AttachedIOEvent = 0x02
)

var attachedIOEventNames = map[AttachedIOEvent]string{
	IOEventDetached:        "detached",
	IOEventAttached:        "attached",
	IOEventAttachedVirtual: "attached-virtual",
}

func (e AttachedIOEvent) String() string {
	if name, ok := attachedIOEventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("AttachedIOEvent(0x%02X)", uint8(e))
}

// PortOutputSubCommand identifies the sub-command byte of a port-output
// message.
type PortOutputSubCommand uint8

const (
	SubCommandStartPower       PortOutputSubCommand = 0x02
	SubCommandSetAccTime       PortOutputSubCommand = 0x05
	SubCommandSetDecTime       PortOutputSubCommand = 0x06
	SubCommandStartSpeed       PortOutputSubCommand = 0x07
	SubCommandStartSpeedForTime PortOutputSubCommand = 0x09
	SubCommandStartSpeedForDegrees PortOutputSubCommand = 0x0B
	SubCommandGotoAbsolutePosition PortOutputSubCommand = 0x0D
	SubCommandWriteDirectModeData  PortOutputSubCommand = 0x51
)

// MotorEndState is the terminal behaviour byte used by timed/positional
// motor commands.
type MotorEndState uint8

const (
	EndStateFloat MotorEndState = 0x00
	EndStateHold  MotorEndState = 0x7E
	EndStateBrake MotorEndState = 0x7F
)

// HubAlertType identifies the alert-type byte of a hub-alert message.
type HubAlertType uint8

const (
	AlertLowVoltage   HubAlertType = 0x01
	AlertHighCurrent  HubAlertType = 0x02
	AlertLowSignal    HubAlertType = 0x03
	AlertOverPower    HubAlertType = 0x04
)

// deviceTypeEntry is one row of the device-type bimap: a raw 16-bit LWP3
// device-type ID mapped to a category and a human label. The catalog is
// intentionally sparse and non-exhaustive -- new hubs introduce new IDs in
// the field, and those decode as Unknown(id) rather than failing.
type deviceTypeEntry struct {
	category model.Category
	label    string
}

var deviceTypes = map[uint16]deviceTypeEntry{
	0x0001: {model.CategoryMotor, "Simple Medium Linear Motor"},
	0x0002: {model.CategoryMotor, "Train Motor"},
	0x0026: {model.CategoryMotor, "Medium Linear Motor"},
	0x0027: {model.CategoryMotor, "Move Hub Motor"},
	0x002E: {model.CategoryMotor, "Technic Large Linear Motor"},
	0x002F: {model.CategoryMotor, "Technic XLarge Linear Motor"},
	0x0030: {model.CategoryMotor, "SPIKE Medium Angular Motor"},
	0x0031: {model.CategoryMotor, "SPIKE Large Angular Motor"},
	0x0041: {model.CategoryMotor, "Technic Medium Angular Motor (Grey)"},
	0x0042: {model.CategoryMotor, "Technic Large Angular Motor (Grey)"},
	0x004B: {model.CategoryMotor, "SPIKE Small Angular Motor"},
	0x0008: {model.CategoryLight, "Simple Light"},
	0x0014: {model.CategoryLight, "Hub LED"},
	0x0022: {model.CategorySensor, "Tilt Sensor"},
	0x0023: {model.CategorySensor, "Motion Sensor"},
	0x003D: {model.CategorySensor, "Technic Color Sensor"},
	0x003E: {model.CategorySensor, "Technic Distance Sensor"},
	0x003F: {model.CategorySensor, "Technic Force Sensor"},
	0x0025: {model.CategoryHubInternal, "Current Sensor"},
	0x0014 + 0x1000: {model.CategoryHubInternal, "Voltage Sensor"},
	0x0039: {model.CategoryHubInternal, "IMU Gesture"},
	0x003A: {model.CategoryHubInternal, "IMU Accelerometer"},
	0x003B: {model.CategoryHubInternal, "IMU Gyroscope"},
	0x003C: {model.CategoryHubInternal, "IMU Position"},
	0x0036: {model.CategoryHubInternal, "Hub Battery"},
}

// LookupDeviceType returns the category and label for a device-type ID,
// falling back to (CategoryUnknown, "Unknown(id)") for IDs not present in
// the static table.
func LookupDeviceType(id uint16) (model.Category, string) {
	if e, ok := deviceTypes[id]; ok {
		return e.category, e.label
	}
	return model.CategoryUnknown, unknownLabel(id)
}

func unknownLabel(id uint16) string {
	const hexdigits = "0123456789ABCDEF"
	b := []byte("Unknown(0x0000)")
	for i := 0; i < 4; i++ {
		b[13-i] = hexdigits[(id>>(4*i))&0xF]
	}
	return string(b)
}
