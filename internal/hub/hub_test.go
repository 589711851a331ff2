package hub

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/muurk/legohub/internal/spike"
	"github.com/muurk/legohub/internal/transport"
)

// fakeAdapter is a transport.Adapter test double driven entirely by the
// test: Open always succeeds immediately, and the test pushes events by
// writing to its own events channel.
type fakeAdapter struct {
	events chan transport.Event

	mu         sync.Mutex
	writes     [][]byte
	closed     bool
	failWrites int // remaining Write calls to fail before succeeding
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{events: make(chan transport.Event, 32)}
}

func (a *fakeAdapter) Open(ctx context.Context) error { return nil }

func (a *fakeAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.closed {
		a.closed = true
		a.events <- transport.Event{Kind: transport.EventDisconnected}
	}
	return nil
}

func (a *fakeAdapter) Events() <-chan transport.Event { return a.events }

func (a *fakeAdapter) Write(ctx context.Context, data []byte, tag string, mode transport.WriteMode) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failWrites > 0 {
		a.failWrites--
		return fmt.Errorf("simulated write failure")
	}
	a.writes = append(a.writes, append([]byte(nil), data...))
	return nil
}

func (a *fakeAdapter) Subscribe(ctx context.Context, tag string) error { return nil }

func (a *fakeAdapter) ReadRSSI(ctx context.Context) error {
	a.events <- transport.Event{Kind: transport.EventRSSIUpdate, RSSI: -50}
	return nil
}

func (a *fakeAdapter) lastWrite() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.writes) == 0 {
		return nil
	}
	return a.writes[len(a.writes)-1]
}

func (a *fakeAdapter) writeCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.writes)
}

func waitForState(t *testing.T, h *Hub, want State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if h.State() == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for state %v, last state %v", want, h.State())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitForTopic(t *testing.T, events chan Event, topic Topic, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-events:
			if ev.Topic == topic {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for topic %v", topic)
		}
	}
}

func newTestHub(t *testing.T, adapter *fakeAdapter) (*Hub, chan Event) {
	t.Helper()
	h := New("test-hub", adapter, WithConnectTimeout(2*time.Second), WithRSSIInterval(time.Hour))
	t.Cleanup(h.Stop)

	events := make(chan Event, 64)
	h.Subscribe(func(ev Event) { events <- ev })
	if err := h.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return h, events
}

func TestLWP3BatteryUpdate(t *testing.T) {
	adapter := newFakeAdapter()
	h, events := newTestHub(t, adapter)

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{
		Kind: transport.EventServicesDiscovered,
		Services: []transport.Characteristic{
			{Service: ServiceLWP3, Tag: "write", Role: transport.RoleWrite},
			{Service: ServiceLWP3, Tag: "notify", Role: transport.RoleNotify},
		},
	}
	waitForState(t, h, StateConnected, time.Second)

	// HubProperty: battery voltage, update, 92%.
	adapter.events <- transport.Event{Kind: transport.EventFrameReceived, Frame: []byte{0x06, 0x00, 0x01, 0x06, 0x06, 0x5C}}
	waitForTopic(t, events, TopicBatteryChanged, time.Second)

	snap := h.Snapshot()
	if snap.Battery == nil || *snap.Battery != 92 {
		t.Fatalf("battery = %v, want 92", snap.Battery)
	}
}

func TestBatteryDampenWindowOverrideForcesImmediateReEmit(t *testing.T) {
	adapter := newFakeAdapter()
	h := New("test-hub", adapter, WithConnectTimeout(2*time.Second), WithRSSIInterval(time.Hour), WithBatteryDampenWindow(0))
	t.Cleanup(h.Stop)
	events := make(chan Event, 64)
	h.Subscribe(func(ev Event) { events <- ev })
	if err := h.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{
		Kind: transport.EventServicesDiscovered,
		Services: []transport.Characteristic{
			{Service: ServiceLWP3, Tag: "write", Role: transport.RoleWrite},
			{Service: ServiceLWP3, Tag: "notify", Role: transport.RoleNotify},
		},
	}
	waitForState(t, h, StateConnected, time.Second)

	frame := []byte{0x06, 0x00, 0x01, 0x06, 0x06, 0x5C}
	adapter.events <- transport.Event{Kind: transport.EventFrameReceived, Frame: frame}
	waitForTopic(t, events, TopicBatteryChanged, time.Second)

	// Same value, same frame again: with a zero dampening window the
	// elapsed-time branch is always true, so it must re-emit even though
	// the value did not change.
	adapter.events <- transport.Event{Kind: transport.EventFrameReceived, Frame: frame}
	waitForTopic(t, events, TopicBatteryChanged, time.Second)
}

func TestBootstrapWriteRetriesOnFailure(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.failWrites = 2
	h := New("test-hub", adapter, WithConnectTimeout(2*time.Second), WithRSSIInterval(time.Hour), WithBootstrapRetries(2))
	t.Cleanup(h.Stop)
	events := make(chan Event, 64)
	h.Subscribe(func(ev Event) { events <- ev })
	if err := h.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{
		Kind: transport.EventServicesDiscovered,
		Services: []transport.Characteristic{
			{Service: ServiceLWP3, Tag: "write", Role: transport.RoleWrite},
			{Service: ServiceLWP3, Tag: "notify", Role: transport.RoleNotify},
		},
	}
	waitForState(t, h, StateConnected, time.Second)

	deadline := time.After(time.Second)
	for {
		if adapter.writeCount() >= 1 {
			break
		}
		select {
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for a bootstrap write to succeed after retries, got %d", adapter.writeCount())
		}
	}
}

func TestSpikeDeviceNotificationRoundTrip(t *testing.T) {
	adapter := newFakeAdapter()
	h, events := newTestHub(t, adapter)

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{
		Kind: transport.EventServicesDiscovered,
		Services: []transport.Characteristic{
			{Service: ServiceSpikePrime, Tag: "rx", Role: transport.RoleWrite},
			{Service: ServiceSpikePrime, Tag: "tx", Role: transport.RoleNotify},
		},
	}
	waitForState(t, h, StateConnected, time.Second)

	infoBody := make([]byte, 16)
	infoBody[8], infoBody[9] = 0x14, 0x00   // MaxPacketSize = 20
	infoBody[10], infoBody[11] = 0xE8, 0x03 // MaxMessageSize = 1000
	infoRaw := append([]byte{byte(spike.TagInfoResponse)}, infoBody...)
	adapter.events <- transport.Event{Kind: transport.EventFrameReceived, Frame: spike.Pack(infoRaw)}

	// First write is the InfoRequest sent right after connecting; the
	// second is the DeviceNotificationRequest sent in response to the
	// InfoResponse frame just delivered.
	deadline := time.After(time.Second)
	for {
		if adapter.writeCount() >= 2 {
			break
		}
		select {
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for bootstrap writes, got %d", adapter.writeCount())
		}
	}

	motor := []byte{0x0A, 0x00, 0x01, 0x64, 0x00, 0x32, 0x00, 0x0A, 0xE8, 0x03, 0x00, 0x00}
	notifyRaw := append([]byte{byte(spike.TagDeviceNotification), 0x00, 0x00}, motor...)
	adapter.events <- transport.Event{Kind: transport.EventFrameReceived, Frame: spike.Pack(notifyRaw)}
	waitForTopic(t, events, TopicDeviceDataChanged, time.Second)

	snap := h.Snapshot()
	m, ok := snap.Motors[0]
	if !ok {
		t.Fatalf("no motor recorded on port 0: %+v", snap.Motors)
	}
	if m.Position != 1000 || m.Speed != 10 {
		t.Fatalf("motor = %+v, want position=1000 speed=10", m)
	}
}

func TestSendRejectsSpikeBinary(t *testing.T) {
	adapter := newFakeAdapter()
	h, _ := newTestHub(t, adapter)

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{
		Kind: transport.EventServicesDiscovered,
		Services: []transport.Characteristic{
			{Service: ServiceSpikePrime, Tag: "rx", Role: transport.RoleWrite},
			{Service: ServiceSpikePrime, Tag: "tx", Role: transport.RoleNotify},
		},
	}
	waitForState(t, h, StateConnected, time.Second)

	err := h.Send(Command{Kind: CmdStartPower, Port: 0, Power: 50})
	if err == nil {
		t.Fatal("Send: want error, got nil")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindUnsupportedCommand {
		t.Fatalf("Send err = %v, want KindUnsupportedCommand", err)
	}
}

func TestNoUsableProtocol(t *testing.T) {
	adapter := newFakeAdapter()
	_, events := newTestHub(t, adapter)

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{Kind: transport.EventServicesDiscovered, Services: nil}

	waitForTopic(t, events, TopicNoUsableProtocol, time.Second)
	waitForTopic(t, events, TopicStateChanged, time.Second)
}

func TestJSONTelemetryPerPortMerge(t *testing.T) {
	adapter := newFakeAdapter()
	h, events := newTestHub(t, adapter)

	adapter.events <- transport.Event{Kind: transport.EventConnected}
	adapter.events <- transport.Event{
		Kind: transport.EventServicesDiscovered,
		Services: []transport.Characteristic{
			{Service: "line", Tag: "line", Role: transport.RoleLine},
		},
	}
	waitForState(t, h, StateConnected, time.Second)

	adapter.events <- transport.Event{Kind: transport.EventLineReceived, Line: []byte(`{"m":0,"p":[[61,[3,5,10,20]]]}`)}
	waitForTopic(t, events, TopicDeviceDataChanged, time.Second)

	snap := h.Snapshot()
	if _, ok := snap.Colors[0]; !ok {
		t.Fatalf("no color recorded on port 0: %+v", snap.Colors)
	}

	// A second line that only reports port 1 must not clear port 0's data.
	adapter.events <- transport.Event{Kind: transport.EventLineReceived, Line: []byte(`{"m":0,"p":[null,[61,[2,9,11,22]]]}`)}
	waitForTopic(t, events, TopicDeviceDataChanged, time.Second)

	snap = h.Snapshot()
	if _, ok := snap.Colors[0]; !ok {
		t.Fatal("port 0 color data lost after a line reporting only port 1")
	}
	if _, ok := snap.Colors[1]; !ok {
		t.Fatal("port 1 color data missing")
	}
}
