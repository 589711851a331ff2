package server

import "time"

// Scenario is a canned sequence of outbound frames/lines the simulator
// replays to every connection, spaced Interval apart. Frames go out over
// the BLE-shaped WebSocket listener; Lines go out over the plain-TCP
// accessory listener.
type Scenario struct {
	Frames   [][]byte
	Lines    [][]byte
	Interval time.Duration
}

// DefaultLWP3Scenario builds the frame sequence a Technic hub sends right
// after connecting: an attached-IO notification for a motor on port 0,
// then a battery-voltage update, then two port-value-single readings.
// Byte layouts follow the LWP3 fixtures exercised by internal/lwp3's
// decoder tests.
func DefaultLWP3Scenario() Scenario {
	return Scenario{
		Interval: 500 * time.Millisecond,
		Frames: [][]byte{
			// AttachedIO: port 0, attached, deviceType 0x002E (Technic L motor).
			{0x0F, 0x00, 0x04, 0x00, 0x01, 0x2E, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
			// HubProperty: battery voltage, update, 92%.
			{0x06, 0x00, 0x01, 0x06, 0x06, 0x5C},
			// PortValueSingle: port 0, raw speed reading of 10.
			{0x05, 0x00, 0x45, 0x00, 0x0A},
			// PortValueSingle: port 0, raw speed reading of 25.
			{0x05, 0x00, 0x45, 0x00, 0x19},
		},
	}
}

// DefaultSpikeJSONScenario builds the line sequence a SPIKE Prime hub
// sends over the accessory stream: a battery line followed by two device
// telemetry lines reporting a color sensor on port 0 (index 0 = "A").
// Tuple shape ([deviceType, [values...]] per port index) follows
// internal/jsontelemetry's decoder.
func DefaultSpikeJSONScenario() Scenario {
	return Scenario{
		Interval: 500 * time.Millisecond,
		Lines: [][]byte{
			[]byte(`{"m":2,"p":[0,92]}`),
			[]byte(`{"m":0,"p":[[61,[3,5,10,20]]]}`),
			[]byte(`{"m":0,"p":[[61,[3,8,10,20]]]}`),
		},
	}
}
