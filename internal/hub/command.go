package hub

import (
	"github.com/muurk/legohub/internal/jsontelemetry"
	"github.com/muurk/legohub/internal/lwp3"
	"github.com/muurk/legohub/internal/model"
)

// CommandKind enumerates the semantic outbound commands the runtime can
// encode for at least one protocol. Every kind encodes to LWP3; only a
// subset translates onto the JSON accessory transport (§4.6).
type CommandKind int

const (
	CmdStartPower CommandKind = iota
	CmdBrake
	CmdFloat
	CmdStartSpeed
	CmdStartSpeedForTime
	CmdStartSpeedForDegrees
	CmdGotoAbsolutePosition
	CmdHubLEDColorIndex
	CmdHubLEDRGB
	CmdCreateVirtualPort
	CmdDisconnectVirtualPort
)

// Command is a semantic outbound instruction handed to Hub.Send. It is
// expressed once, protocol-agnostically, and encoded per the hub's bound
// protocol.
type Command struct {
	Kind CommandKind
	Port model.Port

	Power      int
	Speed      int
	MaxPower   uint8
	UseProfile uint8
	TimeMS     uint16
	Degrees    uint32
	Position   int32
	EndState   lwp3.MotorEndState

	ColorIndex   uint8
	R, G, B      uint8
	PortA, PortB model.Port
	VirtualPort  model.Port
}

// encodeLWP3 returns the LWP3 frame bytes for c. Every CommandKind is
// expressible in LWP3.
func (c Command) encodeLWP3() []byte {
	p := uint8(c.Port)
	switch c.Kind {
	case CmdStartPower:
		return lwp3.EncodeStartPower(p, c.Power)
	case CmdBrake:
		return lwp3.EncodeBrake(p)
	case CmdFloat:
		return lwp3.EncodeFloat(p)
	case CmdStartSpeed:
		return lwp3.EncodeStartSpeed(p, c.Speed, c.MaxPower, c.UseProfile)
	case CmdStartSpeedForTime:
		return lwp3.EncodeStartSpeedForTime(p, c.TimeMS, c.Speed, c.MaxPower, c.EndState, c.UseProfile)
	case CmdStartSpeedForDegrees:
		return lwp3.EncodeStartSpeedForDegrees(p, c.Degrees, c.Speed, c.MaxPower, c.EndState, c.UseProfile)
	case CmdGotoAbsolutePosition:
		return lwp3.EncodeGotoAbsolutePosition(p, c.Position, c.Speed, c.MaxPower, c.EndState, c.UseProfile)
	case CmdHubLEDColorIndex:
		return lwp3.EncodeHubLEDColorIndex(p, c.ColorIndex)
	case CmdHubLEDRGB:
		return lwp3.EncodeHubLEDRGB(p, c.R, c.G, c.B)
	case CmdCreateVirtualPort:
		return lwp3.EncodeCreateVirtualPort(uint8(c.PortA), uint8(c.PortB))
	case CmdDisconnectVirtualPort:
		return lwp3.EncodeDisconnectVirtualPort(uint8(c.VirtualPort))
	default:
		return nil
	}
}

// translateJSON attempts the accessory/JSON-transport translation defined
// by §4.6. Only startPower, float (startPower 0), and startSpeed (and their
// zero-power/zero-speed stop convenience) are expressible; every other kind
// returns ok=false.
func (c Command) translateJSON() (out []byte, ok bool) {
	letter := c.Port.String()
	switch c.Kind {
	case CmdStartPower:
		if c.Power == 0 {
			return jsontelemetry.MotorStop(letter), true
		}
		return jsontelemetry.MotorPWM(letter, c.Power), true
	case CmdFloat:
		return jsontelemetry.MotorStop(letter), true
	case CmdStartSpeed:
		if c.Speed == 0 {
			return jsontelemetry.MotorStop(letter), true
		}
		return jsontelemetry.MotorStart(letter, c.Speed), true
	default:
		return nil, false
	}
}
