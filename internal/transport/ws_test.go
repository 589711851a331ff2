package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newWSTestServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWSTransportConnectAndServices(t *testing.T) {
	srv := newWSTestServer(t, func(conn *websocket.Conn) {
		time.Sleep(50 * time.Millisecond)
		conn.Close()
	})
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	tr := NewWSTransport(url, "0000FD02-0000-1000-8000-00805F9B34FB")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()

	first := <-tr.Events()
	if first.Kind != EventConnected {
		t.Fatalf("expected EventConnected, got %v", first.Kind)
	}
	second := <-tr.Events()
	if second.Kind != EventServicesDiscovered || len(second.Services) != 2 {
		t.Fatalf("expected two characteristics, got %+v", second)
	}
}

func TestWSTransportFrameRoundTrip(t *testing.T) {
	payload := []byte{0x05, 0x00, 0x01, 0x02, 0x31}
	received := make(chan []byte, 1)

	srv := newWSTestServer(t, func(conn *websocket.Conn) {
		_, data, err := conn.ReadMessage()
		if err == nil {
			received <- data
		}
		conn.WriteMessage(websocket.BinaryMessage, payload)
		time.Sleep(100 * time.Millisecond)
		conn.Close()
	})
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	tr := NewWSTransport(url, "0000FD02-0000-1000-8000-00805F9B34FB")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()
	<-tr.Events()
	<-tr.Events()

	if err := tr.Write(ctx, []byte{0x01, 0x02}, "lego-hub", WithoutResponse); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case got := <-received:
		if len(got) != 2 {
			t.Fatalf("server received %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("server never received write")
	}

	select {
	case ev := <-tr.Events():
		if ev.Kind != EventFrameReceived {
			t.Fatalf("expected FrameReceived, got %v", ev.Kind)
		}
		if string(ev.Frame) != string(payload) {
			t.Fatalf("frame = %v", ev.Frame)
		}
	case <-time.After(time.Second):
		t.Fatal("never received frame")
	}
}

func TestWSTransportDisconnectClosesEvents(t *testing.T) {
	srv := newWSTestServer(t, func(conn *websocket.Conn) {
		conn.Close()
	})
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	tr := NewWSTransport(url, "0000FD02-0000-1000-8000-00805F9B34FB")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()
	<-tr.Events()
	<-tr.Events()

	for ev := range tr.Events() {
		if ev.Kind == EventDisconnected {
			return
		}
	}
}
