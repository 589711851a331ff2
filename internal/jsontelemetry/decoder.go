// Package jsontelemetry decodes the accessory-stream wire format: one
// UTF-8 JSON object per line (terminated by \r or \n), with an integer
// method tag m and a params array p. It projects the same device
// categories the lwp3 catalog recognises into the shared model package, so
// a hub.Hub can treat both transports uniformly.
package jsontelemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/muurk/legohub/internal/model"
)

var errMissingMethod = errors.New("jsontelemetry: line has no numeric m field")

// Method is the integer m tag of a telemetry line.
type Method int

const (
	MethodDeviceTelemetry Method = 0
	MethodBattery         Method = 2
)

// motorTypes, distanceTypes, and so on mirror the lwp3 device-type
// catalog's categories for parity between the two wire protocols.
var (
	motorTypes    = map[int]bool{1: true, 2: true, 48: true, 49: true, 65: true, 75: true, 76: true}
	simpleMotors  = map[int]bool{1: true, 2: true}
	distanceTypes = map[int]bool{62: true}
	colorTypes    = map[int]bool{61: true}
	forceTypes    = map[int]bool{63: true}
	lightMatrixTypes = map[int]bool{64: true}
	simpleLightTypes = map[int]bool{8: true}
	comboColorDistance = 37
)

// Line is one decoded telemetry line.
type Line struct {
	Method  Method
	Battery *uint8                 // set iff Method == MethodBattery
	Ports   map[model.Port]PortReading // set iff Method == MethodDeviceTelemetry
}

// PortReading is the per-port payload of a device-telemetry line, already
// split into whichever typed record its device type maps to.
type PortReading struct {
	DeviceType int
	Motor      *model.Motor
	Distance   *model.Distance
	Color      *model.Color
	Force      *model.Force
	LightMatrix *model.LightMatrix
}

// Decode parses one line (without its \r/\n terminator). Lines whose
// method is neither 0 nor 2 decode successfully with Method set and every
// other field left nil/empty -- callers should ignore them, not treat them
// as errors.
func Decode(line []byte) (Line, error) {
	var raw struct {
		M json.RawMessage   `json:"m"`
		P []json.RawMessage `json:"p"`
	}
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Line{}, err
	}
	mVal, ok := numericValue(raw.M)
	if !ok {
		return Line{}, errMissingMethod
	}
	method := Method(int(mVal))

	switch method {
	case MethodBattery:
		if len(raw.P) < 2 {
			return Line{Method: method}, nil
		}
		pct, ok := numericValue(raw.P[1])
		if !ok {
			return Line{Method: method}, nil
		}
		b := clampPercent(pct)
		return Line{Method: method, Battery: &b}, nil

	case MethodDeviceTelemetry:
		ports := make(map[model.Port]PortReading)
		for i := 0; i < len(raw.P) && i < 6; i++ {
			var tuple []json.RawMessage
			if err := json.Unmarshal(raw.P[i], &tuple); err != nil || len(tuple) < 2 {
				continue
			}
			devTypeF, ok := numericValue(tuple[0])
			if !ok {
				continue
			}
			devType := int(devTypeF)
			var rawValues []json.RawMessage
			if err := json.Unmarshal(tuple[1], &rawValues); err != nil {
				continue
			}
			values := make([]*float64, len(rawValues))
			for j, rv := range rawValues {
				if v, ok := numericValue(rv); ok {
					f := v
					values[j] = &f
				}
			}
			port := model.Port(i)
			if reading, ok := classify(devType, values); ok {
				ports[port] = reading
			}
		}
		return Line{Method: method, Ports: ports}, nil

	default:
		return Line{Method: method}, nil
	}
}

func classify(devType int, values []*float64) (PortReading, bool) {
	get := func(i int) float64 {
		if i < len(values) && values[i] != nil {
			return *values[i]
		}
		return 0
	}
	getPtr := func(i int) *float64 {
		if i < len(values) {
			return values[i]
		}
		return nil
	}

	switch {
	case motorTypes[devType]:
		m := model.Motor{DeviceType: uint16(devType), Speed: int8(get(0))}
		if !simpleMotors[devType] && len(values) > 2 {
			m.Position = int32(get(2))
		}
		return PortReading{DeviceType: devType, Motor: &m}, true

	case distanceTypes[devType]:
		d := distanceFromCM(getPtr(0))
		return PortReading{DeviceType: devType, Distance: &d}, true

	case colorTypes[devType]:
		c := model.Color{
			ColorID: int8(get(1)),
			Red:     uint16(get(0)),
			Green:   uint16(get(2)),
			Blue:    uint16(get(3)),
		}
		return PortReading{DeviceType: devType, Color: &c}, true

	case devType == comboColorDistance:
		d := distanceFromCM(getPtr(1))
		c := model.Color{
			ColorID: int8(get(0)),
			// Deliberate approximation (not gamma-correct RGB): reflected
			// light fills red, ambient light fills green.
			Red:   uint16(get(2)),
			Green: uint16(get(3)),
		}
		_ = d
		return PortReading{DeviceType: devType, Color: &c, Distance: &d}, true

	case forceTypes[devType]:
		f := model.Force{Force: uint8(get(0)), Pressed: get(1) != 0}
		return PortReading{DeviceType: devType, Force: &f}, true

	case lightMatrixTypes[devType]:
		lm := model.LightMatrix{Brightness: float64sToBytes(values)}
		return PortReading{DeviceType: devType, LightMatrix: &lm}, true

	case simpleLightTypes[devType]:
		lm := model.LightMatrix{Brightness: float64sToBytes(values)}
		return PortReading{DeviceType: devType, LightMatrix: &lm}, true

	default:
		return PortReading{}, false
	}
}

// distanceFromCM converts a telemetry distance value (centimeters,
// possibly JSON null or negative) into the shared millimeter encoding
// where -1 means "nothing detected". A nil pointer (JSON null) and a
// negative value are both mapped to -1, matching spec.md §4.5/§8's
// "negative or null -> -1" invariant; an explicit 0 stays 0.
func distanceFromCM(cm *float64) model.Distance {
	if cm == nil || *cm < 0 {
		return model.Distance{MM: -1}
	}
	return model.Distance{MM: int16(*cm * 10)}
}

func float64sToBytes(values []*float64) []uint8 {
	out := make([]uint8, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = uint8(*v)
		}
	}
	return out
}

func clampPercent(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return uint8(v)
}

// numericValue accepts a JSON number, a JSON string holding a number, or
// JSON null (returned as ok=false), matching the wire format's tolerance
// for integer/double/numeric-string encodings.
func numericValue(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(str, 64)
		return f, err == nil
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
