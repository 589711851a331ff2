package transport

import (
	"context"
	"net"
	"testing"
	"time"
)

func dialingPipe(t *testing.T) (*LineTransport, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	tr := &LineTransport{dial: func(ctx context.Context) (net.Conn, error) {
		return client, nil
	}}
	return tr, server
}

func TestLineTransportSplitsOnCRLF(t *testing.T) {
	tr, server := dialingPipe(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()
	<-tr.Events() // Connected
	<-tr.Events() // ServicesDiscovered

	go func() {
		server.Write([]byte("{\"m\":2,\"p\":[0,50]}\r\n{\"m\":0,\"p\":[]}\n"))
	}()

	var lines [][]byte
	timeout := time.After(time.Second)
	for len(lines) < 2 {
		select {
		case ev := <-tr.Events():
			if ev.Kind == EventLineReceived {
				lines = append(lines, ev.Line)
			}
		case <-timeout:
			t.Fatalf("timed out waiting for lines, got %d", len(lines))
		}
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if string(lines[0]) != `{"m":2,"p":[0,50]}` {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if string(lines[1]) != `{"m":0,"p":[]}` {
		t.Fatalf("line 1 = %q", lines[1])
	}
}

func TestLineTransportEmitsConnectedAndServices(t *testing.T) {
	tr, server := dialingPipe(t)
	defer server.Close()
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
	if second.Kind != EventServicesDiscovered || len(second.Services) != 1 {
		t.Fatalf("expected one accessory characteristic, got %+v", second)
	}
}

func TestLineTransportWriteAppendsNewline(t *testing.T) {
	tr, server := dialingPipe(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tr.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Close()
	<-tr.Events()
	<-tr.Events()

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		done <- buf[:n]
	}()

	if err := tr.Write(ctx, []byte(`{"m":0}`), "", WithoutResponse); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := <-done
	if string(got) != "{\"m\":0}\n" {
		t.Fatalf("write = %q", got)
	}
}

func TestLineTransportReadRSSIUnsupported(t *testing.T) {
	tr, server := dialingPipe(t)
	defer server.Close()
	if err := tr.ReadRSSI(context.Background()); err == nil {
		t.Fatalf("expected unsupported error")
	}
}
