package jsontelemetry

import (
	"encoding/json"
	"testing"
)

func TestMotorPWMClampsAndStampsUUID(t *testing.T) {
	raw := MotorPWM("A", 250)
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["m"] != "scratch.motor_pwm" {
		t.Fatalf("m = %v", out["m"])
	}
	if out["i"] == "" || out["i"] == nil {
		t.Fatalf("missing message id")
	}
	p := out["p"].(map[string]interface{})
	if p["power"].(float64) != 100 {
		t.Fatalf("power not clamped: %v", p["power"])
	}
}

func TestMotorStopShape(t *testing.T) {
	raw := MotorStop("B")
	var out map[string]interface{}
	json.Unmarshal(raw, &out)
	p := out["p"].(map[string]interface{})
	if p["port"] != "B" || p["stop"].(float64) != 1 {
		t.Fatalf("unexpected shape: %v", out)
	}
}
