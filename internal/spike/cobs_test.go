package spike

import (
	"bytes"
	"math/rand"
	"testing"
)

// Scenario 6: COBS sanity.
func TestPackUnpackRoundTripLiteral(t *testing.T) {
	input := []byte{0x00, 0x01, 0x02, 0x03}
	packed := Pack(input)
	got := Unpack(packed)
	if !bytes.Equal(got, input) {
		t.Fatalf("got %v, want %v", got, input)
	}
}

func TestUnpackWithoutDelimiterYieldsEmpty(t *testing.T) {
	got := Unpack([]byte{0x01, 0x02, 0x03})
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestUnpackEmptyInput(t *testing.T) {
	if got := Unpack(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestPackContainsOnlyTerminatingDelimiter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		n := rng.Intn(500)
		in := make([]byte, n)
		rng.Read(in)
		packed := Pack(in)
		if len(packed) == 0 || packed[len(packed)-1] != delimiter {
			t.Fatalf("packed frame missing trailing delimiter: %v", packed)
		}
		body := packed[:len(packed)-1]
		for _, b := range body {
			if b == delimiter {
				t.Fatalf("stray delimiter in packed body: %v", packed)
			}
		}
	}
}

func TestCobsRoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	sizes := []int{0, 1, 2, 83, 84, 85, 200, 1000, 10000}
	for _, n := range sizes {
		in := make([]byte, n)
		rng.Read(in)
		packed := Pack(in)
		out := Unpack(packed)
		if !bytes.Equal(out, in) {
			t.Fatalf("size %d: round trip mismatch (got %d bytes, want %d)", n, len(out), len(in))
		}
	}
}

func TestCobsRoundTripAllLowBytes(t *testing.T) {
	// Specifically exercise runs of the escape-set bytes.
	in := bytes.Repeat([]byte{0x00, 0x01, 0x02}, 50)
	out := Unpack(Pack(in))
	if !bytes.Equal(out, in) {
		t.Fatalf("mismatch on escape-heavy input")
	}
}

func TestUnpackWithPriorityByte(t *testing.T) {
	in := []byte{0xAA, 0xBB, 0xCC}
	packed := Pack(in)
	withPriority := append([]byte{0x01}, packed...)
	out := Unpack(withPriority)
	if !bytes.Equal(out, in) {
		t.Fatalf("priority-byte round trip mismatch: got %v want %v", out, in)
	}
}

func TestChunkSplitsAtMaxSize(t *testing.T) {
	data := make([]byte, 100)
	chunks := Chunk(data, 30)
	total := 0
	for _, c := range chunks {
		if len(c) > 30 {
			t.Fatalf("chunk exceeds max size: %d", len(c))
		}
		total += len(c)
	}
	if total != 100 {
		t.Fatalf("chunks lost bytes: total %d", total)
	}
}

func TestChunkNoopWhenUnderLimit(t *testing.T) {
	data := []byte{1, 2, 3}
	chunks := Chunk(data, 30)
	if len(chunks) != 1 || !bytes.Equal(chunks[0], data) {
		t.Fatalf("expected single unsplit chunk, got %v", chunks)
	}
}
