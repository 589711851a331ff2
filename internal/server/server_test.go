package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muurk/legohub/internal/transport"
)

func testServer(t *testing.T, scenario Scenario) (lineAddr, wsURL string) {
	t.Helper()
	srv, err := New(&Config{Host: "127.0.0.1", LinePort: 0, WSPort: 0}, scenario)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lAddr, wAddr, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return lAddr, "ws://" + wAddr + "/"
}

func TestServerLineScenarioRoundTrip(t *testing.T) {
	lineAddr, _ := testServer(t, DefaultSpikeJSONScenario())

	tr := transport.NewLineTransport(lineAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()

	<-tr.Events() // connected
	<-tr.Events() // services discovered

	var lines []string
	for len(lines) < 3 {
		ev := <-tr.Events()
		if ev.Kind != transport.EventLineReceived {
			t.Fatalf("unexpected event kind %v", ev.Kind)
		}
		lines = append(lines, string(ev.Line))
	}
	if !strings.Contains(lines[0], `"m":2`) {
		t.Fatalf("first line = %q, want battery line", lines[0])
	}
	if !strings.Contains(lines[1], `"m":0`) {
		t.Fatalf("second line = %q, want telemetry line", lines[1])
	}
}

func TestServerWSScenarioRoundTrip(t *testing.T) {
	_, wsURL := testServer(t, DefaultLWP3Scenario())

	tr := transport.NewWSTransport(wsURL, "00001623-1212-EFDE-1623-785FEABCD123")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()

	<-tr.Events() // connected
	<-tr.Events() // services discovered

	var frames [][]byte
	for len(frames) < 4 {
		ev := <-tr.Events()
		if ev.Kind != transport.EventFrameReceived {
			t.Fatalf("unexpected event kind %v", ev.Kind)
		}
		frames = append(frames, ev.Frame)
	}
	if frames[0][2] != 0x04 {
		t.Fatalf("first frame msg type = %x, want AttachedIO (0x04)", frames[0][2])
	}
	if frames[1][2] != 0x01 {
		t.Fatalf("second frame msg type = %x, want HubProperty (0x01)", frames[1][2])
	}
}
