// Package manager tracks the set of known hubs process-wide: which
// identifiers have been observed, which are currently live, and which
// should be suppressed from future BLE scan results because they already
// proved to have no usable protocol over that transport.
//
// A Manager runs on its own single goroutine, the same way hub.Hub runs
// its own per-hub goroutine: every public method posts a closure onto an
// action channel and blocks for the reply, so all mutable state below is
// touched only from run().
package manager

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/muurk/legohub/internal/logging"
	"go.uber.org/zap"
)

// legoCompanyID is LEGO System A/S's Bluetooth SIG company identifier,
// encoded little-endian at the start of LEGO hubs' manufacturer data.
const legoCompanyID = 0x0397

// lostAfter is how long a known identifier may go unobserved by BLE scans
// before it is evicted, provided it is not currently connected.
const lostAfter = 10 * time.Second

// tickInterval is the Manager's housekeeping tick rate (~2 Hz per spec).
const tickInterval = 500 * time.Millisecond

// legoServices are the advertised GATT service UUIDs that identify a
// LEGO hub on their own, independent of name or manufacturer data.
var legoServices = map[string]bool{
	"00001623-1212-efde-1623-785feabcd123": true,
	"0000fd02-0000-1000-8000-00805f9b34fb": true,
}

// KnownHub is one tracked identifier's bookkeeping record.
type KnownHub struct {
	Identifier  string
	Name        string
	RSSI        int16
	LastSeen    time.Time
	Connected   bool
	NoProtocol  bool // set once this identifier yielded NoUsableProtocol over BLE
}

// Manager tracks identifier -> KnownHub and evicts stale, unconnected
// entries on a tick.
type Manager struct {
	actions chan func()
	stopped chan struct{}
	stopOnce sync.Once

	hubs map[string]*KnownHub
}

// New creates a Manager and starts its run loop.
func New() *Manager {
	m := &Manager{
		actions: make(chan func()),
		stopped: make(chan struct{}),
		hubs:    make(map[string]*KnownHub),
	}
	go m.run()
	return m
}

// Stop terminates the Manager's run loop. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.actions) })
	<-m.stopped
}

func (m *Manager) run() {
	defer close(m.stopped)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case action, ok := <-m.actions:
			if !ok {
				return
			}
			action()
		case <-ticker.C:
			m.evictLost()
		}
	}
}

// Observe records a BLE scan observation. A non-LEGO device, or an
// identifier already known to lack a usable protocol, is ignored so it
// never reappears in List and is left for the line transport instead.
func (m *Manager) Observe(identifier, name string, advertisedServices []string, manufacturerData []byte, rssi int16) {
	done := make(chan struct{})
	m.actions <- func() {
		defer close(done)

		existing, known := m.hubs[identifier]
		if known && existing.NoProtocol {
			return
		}
		if !isLegoHub(name, advertisedServices, manufacturerData) {
			return
		}

		if known {
			existing.Name = name
			existing.RSSI = rssi
			existing.LastSeen = time.Now()
			return
		}

		m.hubs[identifier] = &KnownHub{
			Identifier: identifier,
			Name:       name,
			RSSI:       rssi,
			LastSeen:   time.Now(),
		}
		logging.Info("hub observed", zap.String("identifier", identifier), zap.String("name", name))
	}
	<-done
}

// MarkConnected updates an identifier's connected flag, exempting it from
// the lost-tick eviction while true.
func (m *Manager) MarkConnected(identifier string, connected bool) {
	done := make(chan struct{})
	m.actions <- func() {
		defer close(done)
		if h, ok := m.hubs[identifier]; ok {
			h.Connected = connected
		}
	}
	<-done
}

// MarkNoProtocol records that identifier connected over BLE but yielded
// NoUsableProtocol, so future BLE observations of it are suppressed and
// it is left to be picked up by the line transport instead.
func (m *Manager) MarkNoProtocol(identifier string) {
	done := make(chan struct{})
	m.actions <- func() {
		defer close(done)
		if h, ok := m.hubs[identifier]; ok {
			h.NoProtocol = true
		}
	}
	<-done
}

// List returns known hubs sorted by identifier.
func (m *Manager) List() []KnownHub {
	result := make(chan []KnownHub, 1)
	m.actions <- func() {
		out := make([]KnownHub, 0, len(m.hubs))
		for _, h := range m.hubs {
			out = append(out, *h)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
		result <- out
	}
	return <-result
}

func (m *Manager) evictLost() {
	cutoff := time.Now().Add(-lostAfter)
	for id, h := range m.hubs {
		if h.Connected {
			continue
		}
		if h.LastSeen.Before(cutoff) {
			delete(m.hubs, id)
			logging.Info("hub lost", zap.String("identifier", id))
		}
	}
}

// isLegoHub applies the spec's three-way heuristic: a matching advertised
// service, a manufacturer-data company ID of 0x0397, or a name containing
// one of LEGO's hub product strings.
func isLegoHub(name string, services []string, manufacturerData []byte) bool {
	for _, s := range services {
		if legoServices[strings.ToLower(s)] {
			return true
		}
	}
	if len(manufacturerData) >= 2 {
		companyID := uint16(manufacturerData[0]) | uint16(manufacturerData[1])<<8
		if companyID == legoCompanyID {
			return true
		}
	}
	upper := strings.ToUpper(name)
	for _, marker := range []string{"LEGO", "TECHNIC", "SPIKE"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
