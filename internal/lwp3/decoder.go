package lwp3

import (
	"fmt"

	"github.com/muurk/legohub/internal/byteutil"
)

// Message is the decoded, tagged-union result of Decode. Every concrete
// type below implements it; Unknown is the dedicated fallback for message
// types this catalog does not recognise.
type Message interface {
	Kind() MessageType
	String() string
}

// HubPropertyMsg is message type 0x01. Property and Operation pass through
// even when unknown to the catalog.
type HubPropertyMsg struct {
	Property  HubProperty
	Operation HubPropertyOperation
	Payload   []byte
}

func (m HubPropertyMsg) Kind() MessageType { return MsgHubProperty }
func (m HubPropertyMsg) String() string {
	return fmt.Sprintf("HubProperty{property=0x%02X op=0x%02X payload=[%s]}", m.Property, m.Operation, byteutil.HexDump(m.Payload))
}

// HubActionMsg is message type 0x02.
type HubActionMsg struct {
	Action HubAction
}

func (m HubActionMsg) Kind() MessageType { return MsgHubAction }
func (m HubActionMsg) String() string    { return fmt.Sprintf("HubAction{%v}", m.Action) }

// HubAlertMsg is message type 0x03.
type HubAlertMsg struct {
	AlertType HubAlertType
	Operation HubPropertyOperation
	Payload   []byte
}

func (m HubAlertMsg) Kind() MessageType { return MsgHubAlert }
func (m HubAlertMsg) String() string {
	return fmt.Sprintf("HubAlert{type=0x%02X op=0x%02X}", m.AlertType, m.Operation)
}

// AttachedIOMsg is message type 0x04. Only the fields relevant to Event
// are populated; the rest are zero.
type AttachedIOMsg struct {
	Port       uint8
	Event      AttachedIOEvent
	DeviceType uint16
	HWRevision uint32
	SWRevision uint32
	PortA      uint8 // attached-virtual only
	PortB      uint8 // attached-virtual only
}

func (m AttachedIOMsg) Kind() MessageType { return MsgAttachedIO }
func (m AttachedIOMsg) String() string {
	return fmt.Sprintf("AttachedIO{port=%d event=%v deviceType=0x%04X}", m.Port, m.Event, m.DeviceType)
}

// PortValueSingleMsg is message type 0x45.
type PortValueSingleMsg struct {
	Port  uint8
	Value []byte
}

func (m PortValueSingleMsg) Kind() MessageType { return MsgPortValueSingle }
func (m PortValueSingleMsg) String() string {
	return fmt.Sprintf("PortValueSingle{port=%d value=[%s]}", m.Port, byteutil.HexDump(m.Value))
}

// PortValueCombinedMsg is message type 0x46.
type PortValueCombinedMsg struct {
	Port         uint8
	ModePointers uint16
	Value        []byte
}

func (m PortValueCombinedMsg) Kind() MessageType { return MsgPortValueCombined }
func (m PortValueCombinedMsg) String() string {
	return fmt.Sprintf("PortValueCombined{port=%d modePointers=0x%04X}", m.Port, m.ModePointers)
}

// FixedOffsetMsg covers port-information, port-mode-information,
// port-input-format, port-output-feedback, and generic-error messages:
// all are fixed-offset records whose exact field layout the caller already
// knows from the message type, so the decoder hands back the raw payload
// rather than a bespoke struct per type.
type FixedOffsetMsg struct {
	MsgType MessageType
	Port    uint8
	Payload []byte
}

func (m FixedOffsetMsg) Kind() MessageType { return m.MsgType }
func (m FixedOffsetMsg) String() string {
	return fmt.Sprintf("%v{port=%d payload=[%s]}", m.MsgType, m.Port, byteutil.HexDump(m.Payload))
}

// UnknownMsg is the fallback for any message type not covered above. It is
// not an error: the decoder never fails on an unrecognised type.
type UnknownMsg struct {
	RawType MessageType
	Payload []byte
}

func (m UnknownMsg) Kind() MessageType { return m.RawType }
func (m UnknownMsg) String() string {
	return fmt.Sprintf("Unknown{type=0x%02X payload=[%s]}", uint8(m.RawType), byteutil.HexDump(m.Payload))
}

// Decode parses one LWP3 frame from data. It never fails on an unknown
// message type or unknown device type/sub-record -- those produce an
// Unknown variant or a best-effort record with raw integers passed
// through. It fails with a *Error(KindMalformedFrame) only when data is
// shorter than the declared length or shorter than the minimum header.
func Decode(data []byte) (Message, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.totalLength > len(data) {
		return nil, malformed("declared length %d exceeds available %d bytes", h.totalLength, len(data))
	}
	if h.totalLength < h.headerSize {
		return nil, malformed("declared length %d shorter than header %d", h.totalLength, h.headerSize)
	}

	payload := data[h.headerSize:h.totalLength]

	switch h.msgType {
	case MsgHubProperty:
		return decodeHubProperty(payload)
	case MsgHubAction:
		return decodeHubAction(payload)
	case MsgHubAlert:
		return decodeHubAlert(payload)
	case MsgAttachedIO:
		return decodeAttachedIO(payload)
	case MsgPortValueSingle:
		return decodePortValueSingle(payload)
	case MsgPortValueCombined:
		return decodePortValueCombined(payload)
	case MsgPortInformation, MsgPortModeInformation, MsgPortInputFormat, MsgPortOutputFeedback, MsgGenericError:
		return decodeFixedOffset(h.msgType, payload)
	default:
		return UnknownMsg{RawType: h.msgType, Payload: payload}, nil
	}
}

func decodeHubProperty(p []byte) (Message, error) {
	if len(p) < 2 {
		return nil, malformed("hub-property payload too short: %d bytes", len(p))
	}
	return HubPropertyMsg{
		Property:  HubProperty(p[0]),
		Operation: HubPropertyOperation(p[1]),
		Payload:   p[2:],
	}, nil
}

func decodeHubAction(p []byte) (Message, error) {
	if len(p) < 1 {
		return nil, malformed("hub-action payload empty")
	}
	action := HubAction(p[0])
	if !action.IsKnown() {
		return UnknownMsg{RawType: MsgHubAction, Payload: p}, nil
	}
	return HubActionMsg{Action: action}, nil
}

func decodeHubAlert(p []byte) (Message, error) {
	if len(p) < 2 {
		return nil, malformed("hub-alert payload too short: %d bytes", len(p))
	}
	return HubAlertMsg{
		AlertType: HubAlertType(p[0]),
		Operation: HubPropertyOperation(p[1]),
		Payload:   p[2:],
	}, nil
}

func decodeAttachedIO(p []byte) (Message, error) {
	if len(p) < 2 {
		return nil, malformed("attached-io payload too short: %d bytes", len(p))
	}
	port := p[0]
	event := AttachedIOEvent(p[1])
	rest := p[2:]

	switch event {
	case IOEventDetached:
		return AttachedIOMsg{Port: port, Event: event}, nil
	case IOEventAttached:
		if len(rest) < 10 {
			return nil, malformed("attached-io attached payload too short: %d bytes", len(rest))
		}
		devType, _ := byteutil.U16LE(rest, 0)
		hwRev, _ := byteutil.U32LE(rest, 2)
		swRev, _ := byteutil.U32LE(rest, 6)
		return AttachedIOMsg{Port: port, Event: event, DeviceType: devType, HWRevision: hwRev, SWRevision: swRev}, nil
	case IOEventAttachedVirtual:
		if len(rest) < 4 {
			return nil, malformed("attached-io attached-virtual payload too short: %d bytes", len(rest))
		}
		devType, _ := byteutil.U16LE(rest, 0)
		return AttachedIOMsg{Port: port, Event: event, DeviceType: devType, PortA: rest[2], PortB: rest[3]}, nil
	default:
		return UnknownMsg{RawType: MsgAttachedIO, Payload: p}, nil
	}
}

func decodePortValueSingle(p []byte) (Message, error) {
	if len(p) < 1 {
		return nil, malformed("port-value-single payload empty")
	}
	return PortValueSingleMsg{Port: p[0], Value: p[1:]}, nil
}

func decodePortValueCombined(p []byte) (Message, error) {
	if len(p) < 3 {
		return nil, malformed("port-value-combined payload too short: %d bytes", len(p))
	}
	modePointers, _ := byteutil.U16LE(p, 1)
	return PortValueCombinedMsg{Port: p[0], ModePointers: modePointers, Value: p[3:]}, nil
}

func decodeFixedOffset(t MessageType, p []byte) (Message, error) {
	if len(p) < 1 {
		return nil, malformed("%v payload empty", t)
	}
	return FixedOffsetMsg{MsgType: t, Port: p[0], Payload: p[1:]}, nil
}
