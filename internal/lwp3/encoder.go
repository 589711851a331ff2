package lwp3

// wrap prepends the length prefix and [hubID=0, msgType] header to
// payload, choosing the length encoding by construction: 2-byte form iff
// the total frame length is >= 128.
func wrap(msgType MessageType, payload []byte) []byte {
	const hubID = 0
	bodyLen := 2 + len(payload) // hubID + msgType + payload
	// total length = len(lengthBytes) + bodyLen; try 1-byte first.
	total := 1 + bodyLen
	if total >= 128 {
		total = 2 + bodyLen
	}

	out := make([]byte, 0, total)
	out = append(out, lengthBytes(total)...)
	out = append(out, hubID, byte(msgType))
	out = append(out, payload...)
	return out
}

// EncodeHubPropertyRequest builds a hub-property request-update message,
// e.g. to ask for the current battery voltage.
func EncodeHubPropertyRequest(property HubProperty) []byte {
	return wrap(MsgHubProperty, []byte{byte(property), byte(OpRequestUpdate)})
}

// EncodeHubPropertyEnableUpdates builds a hub-property enable-updates
// message, e.g. to receive periodic battery voltage pushes.
func EncodeHubPropertyEnableUpdates(property HubProperty) []byte {
	return wrap(MsgHubProperty, []byte{byte(property), byte(OpEnableUpdates)})
}

// EncodeHubAction builds a hub-action message.
func EncodeHubAction(action HubAction) []byte {
	return wrap(MsgHubAction, []byte{byte(action)})
}

// portOutput prepends [port, startup=0x11, subCommand] to body, per the
// encoder rule that port-output commands always carry "execute
// immediately + feedback" as the startup/completion byte.
func portOutput(port uint8, subCommand PortOutputSubCommand, body []byte) []byte {
	const startupExecuteImmediatelyFeedback = 0x11
	out := make([]byte, 0, 3+len(body))
	out = append(out, port, startupExecuteImmediatelyFeedback, byte(subCommand))
	out = append(out, body...)
	return wrap(MsgPortOutputCommand, out)
}

func signedByte(v int) byte {
	if v < -128 {
		v = -128
	}
	if v > 127 {
		v = 127
	}
	return byte(int8(v))
}

// EncodeStartPower issues a raw power command; power is clamped to
// [-127, 127] and encoded two's complement in one byte.
func EncodeStartPower(port uint8, power int) []byte {
	return portOutput(port, SubCommandStartPower, []byte{signedByte(power)})
}

// EncodeBrake is startPower(port, 127): active braking.
func EncodeBrake(port uint8) []byte {
	return EncodeStartPower(port, int(EndStateBrake))
}

// EncodeFloat is startPower(port, 0): coast, no braking.
func EncodeFloat(port uint8) []byte {
	return EncodeStartPower(port, 0)
}

// EncodeStartSpeed issues startSpeed(port, speed, maxPower, useProfile).
func EncodeStartSpeed(port uint8, speed int, maxPower uint8, useProfile uint8) []byte {
	return portOutput(port, SubCommandStartSpeed, []byte{signedByte(speed), maxPower, useProfile})
}

// EncodeStartSpeedForTime issues startSpeedForTime(port, time, speed,
// maxPower, endState, useProfile).
func EncodeStartSpeedForTime(port uint8, timeMS uint16, speed int, maxPower uint8, endState MotorEndState, useProfile uint8) []byte {
	body := []byte{
		byte(timeMS), byte(timeMS >> 8),
		signedByte(speed),
		maxPower,
		byte(endState),
		useProfile,
	}
	return portOutput(port, SubCommandStartSpeedForTime, body)
}

// EncodeStartSpeedForDegrees issues startSpeedForDegrees(port, degrees,
// speed, maxPower, endState, useProfile).
func EncodeStartSpeedForDegrees(port uint8, degrees uint32, speed int, maxPower uint8, endState MotorEndState, useProfile uint8) []byte {
	body := []byte{
		byte(degrees), byte(degrees >> 8), byte(degrees >> 16), byte(degrees >> 24),
		signedByte(speed),
		maxPower,
		byte(endState),
		useProfile,
	}
	return portOutput(port, SubCommandStartSpeedForDegrees, body)
}

// EncodeGotoAbsolutePosition issues gotoAbsolutePosition(port, position,
// speed, maxPower, endState, useProfile).
func EncodeGotoAbsolutePosition(port uint8, position int32, speed int, maxPower uint8, endState MotorEndState, useProfile uint8) []byte {
	up := uint32(position)
	body := []byte{
		byte(up), byte(up >> 8), byte(up >> 16), byte(up >> 24),
		signedByte(speed),
		maxPower,
		byte(endState),
		useProfile,
	}
	return portOutput(port, SubCommandGotoAbsolutePosition, body)
}

// HubLEDMode selects whether EncodeHubLED takes a colour index or RGB
// triple.
type HubLEDMode uint8

const (
	HubLEDModeColorIndex HubLEDMode = 0
	HubLEDModeRGB        HubLEDMode = 1
)

// EncodeHubLEDColorIndex sets the hub status LED to one of the fixed
// colour indices via writeDirectModeData mode 0.
func EncodeHubLEDColorIndex(port uint8, colorIndex uint8) []byte {
	return portOutput(port, SubCommandWriteDirectModeData, []byte{byte(HubLEDModeColorIndex), colorIndex})
}

// EncodeHubLEDRGB sets the hub status LED to an explicit RGB triple via
// writeDirectModeData mode 1.
func EncodeHubLEDRGB(port uint8, r, g, b uint8) []byte {
	return portOutput(port, SubCommandWriteDirectModeData, []byte{byte(HubLEDModeRGB), r, g, b})
}

// MsgVirtualPortSetup is the message type for virtual port connect/
// disconnect commands.
const MsgVirtualPortSetup MessageType = 0x61

// EncodeCreateVirtualPort pairs two external ports into a hub-synthesized
// virtual port.
func EncodeCreateVirtualPort(portA, portB uint8) []byte {
	return wrap(MsgVirtualPortSetup, []byte{0x01, portA, portB})
}

// EncodeDisconnectVirtualPort tears down a previously created virtual
// port.
func EncodeDisconnectVirtualPort(virtualPort uint8) []byte {
	return wrap(MsgVirtualPortSetup, []byte{0x00, virtualPort})
}

// EncodePortInputFormatSingle requests (and, if enableNotifications,
// subscribes to) single-value updates for one port/mode at the given
// delta interval.
func EncodePortInputFormatSingle(port uint8, mode uint8, deltaInterval uint32, enableNotifications bool) []byte {
	body := []byte{port, mode, byte(deltaInterval), byte(deltaInterval >> 8), byte(deltaInterval >> 16), byte(deltaInterval >> 24)}
	if enableNotifications {
		body = append(body, 1)
	} else {
		body = append(body, 0)
	}
	return wrap(MsgPortInputFormat, body)
}
