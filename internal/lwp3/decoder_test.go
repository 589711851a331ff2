package lwp3

import (
	"bytes"
	"math/rand"
	"testing"
)

// Scenario 1: battery update.
func TestDecodeBatteryUpdate(t *testing.T) {
	frame := []byte{0x06, 0x00, 0x01, 0x06, 0x06, 0x64}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	hp, ok := msg.(HubPropertyMsg)
	if !ok {
		t.Fatalf("got %T, want HubPropertyMsg", msg)
	}
	if hp.Property != PropertyBatteryVoltage || hp.Operation != OpUpdate {
		t.Fatalf("got %+v", hp)
	}
	if !bytes.Equal(hp.Payload, []byte{0x64}) {
		t.Fatalf("payload = %x", hp.Payload)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected error on empty input")
	}
}

func TestDecodeOneByteInput(t *testing.T) {
	if _, err := Decode([]byte{0x05}); err == nil {
		t.Fatal("expected error on 1-byte input")
	}
}

func TestDecodeLengthExceedsBuffer(t *testing.T) {
	// Declares length 20 but only 3 bytes follow.
	if _, err := Decode([]byte{20, 0x00, 0x01}); err == nil {
		t.Fatal("expected error when declared length exceeds buffer")
	}
}

func TestDecodeUnknownMessageType(t *testing.T) {
	frame := []byte{0x03, 0x00, 0xF0}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := msg.(UnknownMsg); !ok {
		t.Fatalf("got %T, want UnknownMsg", msg)
	}
}

func TestDecodeUnknownHubAction(t *testing.T) {
	frame := []byte{0x04, 0x00, 0x02, 0xEE}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := msg.(UnknownMsg); !ok {
		t.Fatalf("got %T, want UnknownMsg for unrecognised action", msg)
	}
}

func Test2ByteLengthForm(t *testing.T) {
	payload := make([]byte, 130)
	frame := EncodeHubPropertyRequest(PropertyBatteryVoltage)
	_ = frame
	// Build a frame whose total length is exactly 130 (>=128) by hand.
	total := 130
	hdr := []byte{byte((total & 0x7F) | 0x80), byte(total >> 7), 0x00, byte(MsgHubProperty)}
	body := make([]byte, total-4)
	full := append(hdr, body...)
	_ = payload
	msg, err := Decode(full)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if msg.Kind() != MsgHubProperty {
		t.Fatalf("got kind %v", msg.Kind())
	}
}

func TestAttachedIODetach(t *testing.T) {
	frame := wrap(MsgAttachedIO, []byte{0x01, byte(IOEventDetached)})
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	io, ok := msg.(AttachedIOMsg)
	if !ok || io.Event != IOEventDetached || io.Port != 1 {
		t.Fatalf("got %+v", msg)
	}
}

func TestAttachedIOAttached(t *testing.T) {
	body := []byte{0x00, byte(IOEventAttached)}
	body = append(body, 0x30, 0x00) // deviceType LE
	body = append(body, 0x01, 0x00, 0x00, 0x00) // hw rev
	body = append(body, 0x02, 0x00, 0x00, 0x00) // sw rev
	frame := wrap(MsgAttachedIO, body)
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	io := msg.(AttachedIOMsg)
	if io.DeviceType != 0x0030 || io.HWRevision != 1 || io.SWRevision != 2 {
		t.Fatalf("got %+v", io)
	}
}

func TestLengthByteNeverExceedsInputInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := rng.Intn(40)
		data := make([]byte, n)
		rng.Read(data)
		msg, err := Decode(data)
		if err != nil {
			continue
		}
		h, herr := parseHeader(data)
		if herr != nil {
			t.Fatalf("decoded %v but parseHeader failed: %v", msg, herr)
		}
		if h.totalLength > len(data) {
			t.Fatalf("length_byte %d > input length %d", h.totalLength, len(data))
		}
	}
}
