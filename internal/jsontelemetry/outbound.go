package jsontelemetry

import (
	"encoding/json"

	"github.com/google/uuid"
)

// clampSigned constrains v to [lo, hi].
func clampSigned(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type envelope struct {
	I string      `json:"i"`
	M string      `json:"m"`
	P interface{} `json:"p"`
}

func encode(method string, params interface{}) []byte {
	e := envelope{I: uuid.NewString(), M: method, P: params}
	b, _ := json.Marshal(e)
	return b
}

// MotorPWM builds scratch.motor_pwm -- the JSON-transport analogue of an
// LWP3 startPower command -- clamping power to [-100, 100]. A zero power
// is translated by the caller into MotorStop instead, mirroring the LWP3
// startPower(0) == float() convenience.
func MotorPWM(portLetter string, power int) []byte {
	return encode("scratch.motor_pwm", map[string]interface{}{
		"port":  portLetter,
		"power": clampSigned(power, -100, 100),
		"stall": false,
	})
}

// MotorStart builds scratch.motor_start -- the JSON-transport analogue of
// an LWP3 startSpeed command -- clamping speed to [-100, 100].
func MotorStart(portLetter string, speed int) []byte {
	return encode("scratch.motor_start", map[string]interface{}{
		"port":  portLetter,
		"speed": clampSigned(speed, -100, 100),
		"stall": true,
	})
}

// MotorStop builds scratch.motor_stop.
func MotorStop(portLetter string) []byte {
	return encode("scratch.motor_stop", map[string]interface{}{
		"port": portLetter,
		"stop": 1,
	})
}
