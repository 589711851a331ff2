package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSTransport adapts a gorilla/websocket connection to the Adapter
// contract. It stands in for a BLE GATT link: binary frames map onto
// BLE characteristic notify/write, and a single characteristic tag
// ("lego-hub") is reported at ServicesDiscovered time since a raw
// WebSocket has no notion of multiple characteristics.
type WSTransport struct {
	url     string
	service string

	mu     sync.Mutex
	conn   *websocket.Conn
	events chan Event
	closed bool
}

// NewWSTransport returns a transport that dials url on Open and reports
// service as its single GATT service's UUID at ServicesDiscovered time --
// a real BLE adapter would learn this from discovery instead of being
// told.
func NewWSTransport(url string, service string) *WSTransport {
	return &WSTransport{url: url, service: service}
}

func (t *WSTransport) Open(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return fmt.Errorf("ws dial: %w", err)
	}

	t.mu.Lock()
	t.conn = conn
	t.events = make(chan Event, 32)
	t.mu.Unlock()

	go t.readLoop()

	t.events <- Event{Kind: EventConnected}
	t.events <- Event{Kind: EventServicesDiscovered, Services: []Characteristic{
		{Service: t.service, Tag: "lego-hub", Role: RoleNotify},
		{Service: t.service, Tag: "lego-hub", Role: RoleWrite},
	}}
	return nil
}

func (t *WSTransport) readLoop() {
	defer close(t.events)
	for {
		t.mu.Lock()
		conn := t.conn
		t.mu.Unlock()
		if conn == nil {
			return
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			t.emitDisconnect(err.Error())
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			t.events <- Event{Kind: EventFrameReceived, Frame: data, FrameTag: "lego-hub"}
		case websocket.TextMessage:
			t.events <- Event{Kind: EventLineReceived, Line: data}
		}
	}
}

func (t *WSTransport) emitDisconnect(reason string) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return
	}
	defer func() { recover() }() // events may already be closed by Close
	t.events <- Event{Kind: EventDisconnected, DisconnectReason: reason}
}

func (t *WSTransport) Events() <-chan Event {
	return t.events
}

func (t *WSTransport) Write(ctx context.Context, data []byte, tag string, mode WriteMode) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("transport not open")
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(5 * time.Second)
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// Subscribe is a no-op: the single lego-hub characteristic is always
// notifying once the socket is open.
func (t *WSTransport) Subscribe(ctx context.Context, tag string) error {
	return nil
}

// ReadRSSI has no WebSocket equivalent; report a fixed, clearly synthetic
// strength so runtime code exercising the RSSI-poll path has a value to
// work with.
func (t *WSTransport) ReadRSSI(ctx context.Context) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return fmt.Errorf("transport closed")
	}
	select {
	case t.events <- Event{Kind: EventRSSIUpdate, RSSI: -50}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (t *WSTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.conn == nil {
		return nil
	}
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return t.conn.Close()
}
