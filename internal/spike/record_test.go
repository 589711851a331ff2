package spike

import "testing"

// Scenario 5: SPIKE DeviceNotification round trip.
func TestParseDeviceNotificationScenario(t *testing.T) {
	body := []byte{}
	// Battery(75)
	body = append(body, byte(SubTagBattery), 75)
	// Motor(port=0, type=49, absPos=0, power=50, speed=50, pos=360)
	body = append(body, byte(SubTagMotor),
		0,    // port
		49,   // device type
		0, 0, // absPos i16 LE = 0
		50, 0, // power i16 LE = 50
		50,             // speed i8 = 50
		0x68, 0x01, 0, 0, // position i32 LE = 360
	)

	n := ParseDeviceNotification(body)

	if n.Battery == nil || n.Battery.Level != 75 {
		t.Fatalf("battery = %+v", n.Battery)
	}
	if len(n.Motors) != 1 {
		t.Fatalf("expected 1 motor, got %d", len(n.Motors))
	}
	m := n.Motors[0]
	if m.Port != 0 || m.DeviceType != 49 || m.Power != 50 || m.Speed != 50 || m.Position != 360 {
		t.Fatalf("motor = %+v", m)
	}
	if len(n.Colors) != 0 || len(n.Distances) != 0 || len(n.Forces) != 0 || len(n.LightMatrices) != 0 {
		t.Fatalf("expected no other typed records, got %+v", n)
	}
}

func TestParseDeviceNotificationStopsOnUnknownTag(t *testing.T) {
	body := []byte{byte(SubTagBattery), 50, 0xFF, 1, 2, 3}
	n := ParseDeviceNotification(body)
	if n.Battery == nil || n.Battery.Level != 50 {
		t.Fatalf("expected battery parsed before unknown tag, got %+v", n)
	}
}

func TestParseDeviceNotificationStopsOnTruncatedRecord(t *testing.T) {
	// Force sub-record declares size 4 but only 2 bytes remain.
	body := []byte{byte(SubTagForce), 0}
	n := ParseDeviceNotification(body)
	if len(n.Forces) != 0 {
		t.Fatalf("expected no partial force record, got %+v", n.Forces)
	}
}

func TestParseDeviceNotificationColorAndDistance(t *testing.T) {
	body := []byte{}
	body = append(body, byte(SubTagColor), 3, 0xFE /* -2 */, 10, 0, 20, 0, 30, 0)
	body = append(body, byte(SubTagDistance), 4, 0xFF, 0xFF) // -1 = nothing detected
	n := ParseDeviceNotification(body)
	if len(n.Colors) != 1 || n.Colors[0].ColorID != -2 || n.Colors[0].Red != 10 {
		t.Fatalf("color = %+v", n.Colors)
	}
	if len(n.Distances) != 1 || n.Distances[0].MM != -1 {
		t.Fatalf("distance = %+v", n.Distances)
	}
}

func TestParseInfoResponseAllTenFields(t *testing.T) {
	body := make([]byte, 16)
	body[0], body[1] = 1, 2 // RPCMajor=1, RPCMinor=2
	body[2], body[3] = 0x2A, 0x00 // RPCBuild=42
	body[4], body[5] = 3, 1 // FirmwareMajor=3, FirmwareMinor=1
	body[6], body[7] = 0x90, 0x01 // FirmwareBuild=400
	body[8], body[9] = 0x14, 0x00 // MaxPacketSize=20
	body[10], body[11] = 0xE8, 0x03 // MaxMessageSize=1000
	body[12], body[13] = 0x00, 0x04 // MaxChunkSize=1024
	body[14], body[15] = 0x07, 0x00 // ProductGroupDeviceCode=7

	info, err := ParseInfoResponse(body)
	if err != nil {
		t.Fatalf("ParseInfoResponse: %v", err)
	}
	if info.RPCMajor != 1 || info.RPCMinor != 2 || info.RPCBuild != 42 {
		t.Fatalf("rpc version = %+v", info)
	}
	if info.FirmwareMajor != 3 || info.FirmwareMinor != 1 || info.FirmwareBuild != 400 {
		t.Fatalf("firmware version = %+v", info)
	}
	if info.MaxPacketSize != 20 || info.MaxMessageSize != 1000 || info.MaxChunkSize != 1024 {
		t.Fatalf("size limits = %+v", info)
	}
	if info.ProductGroupDeviceCode != 7 {
		t.Fatalf("ProductGroupDeviceCode = %d, want 7", info.ProductGroupDeviceCode)
	}
}

func TestParseInfoResponseTooShort(t *testing.T) {
	if _, err := ParseInfoResponse(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short info-response body")
	}
}

func TestOutboundCommandConstructors(t *testing.T) {
	if got := InfoRequest(); len(got) != 1 || got[0] != 0x00 {
		t.Fatalf("InfoRequest = %v", got)
	}
	if got := DeviceNotificationRequest(5000); len(got) != 3 || got[0] != 0x28 || got[1] != 0x88 || got[2] != 0x13 {
		t.Fatalf("DeviceNotificationRequest = %v", got)
	}
	if got := ProgramFlowRequest(true, 2); len(got) != 3 || got[0] != 0x1E || got[1] != 1 || got[2] != 2 {
		t.Fatalf("ProgramFlowRequest = %v", got)
	}
	if got := ClearSlot(5); len(got) != 2 || got[0] != 0x46 || got[1] != 5 {
		t.Fatalf("ClearSlot = %v", got)
	}
	if got := GetHubName(); len(got) != 1 || got[0] != 0x18 {
		t.Fatalf("GetHubName = %v", got)
	}
	name := SetHubName("hub")
	want := append([]byte{0x16}, append([]byte("hub"), 0)...)
	if string(name) != string(want) {
		t.Fatalf("SetHubName = %v, want %v", name, want)
	}
}
