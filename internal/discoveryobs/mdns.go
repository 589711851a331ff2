// Package discoveryobs feeds manager.Manager.Observe from mDNS scan
// results. It is the discovery substrate for the accessory line
// transport: a LEGO hub on the line transport has no BLE advertisement
// to central-scan, so it instead advertises itself over mDNS the way the
// teacher's devices did, and this package turns that into the same
// Observe calls a BLE central scanner would produce.
package discoveryobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/muurk/legohub/internal/logging"
	"github.com/muurk/legohub/internal/manager"
	"go.uber.org/zap"
)

// ServiceType is the mDNS service type LEGO accessory-line hubs (and
// cmd/legohub-sim, standing in for one) advertise under.
const ServiceType = "_legohub._tcp"

// ServiceDomain is the standard mDNS domain.
const ServiceDomain = "local."

// DefaultScanTimeout bounds a single Scan call.
const DefaultScanTimeout = 10 * time.Second

// legoMarker is synthesized as manufacturer data on every entry this
// package reports: anything advertising under ServiceType is already
// known to be a LEGO line-transport hub, so Manager's broader
// name/service/manufacturer-data heuristic is satisfied deliberately
// rather than by coincidence of naming.
var legoMarker = []byte{0x97, 0x03}

// Scanner browses mDNS for ServiceType and reports each entry to a
// manager.Manager.
type Scanner struct {
	Timeout time.Duration
}

// NewScanner creates a Scanner with the default timeout.
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan performs one browse pass and calls mgr.Observe for every entry
// found before the timeout elapses.
func (s *Scanner) Scan(ctx context.Context, mgr *manager.Manager) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			s.report(entry, mgr)
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	return nil
}

func (s *Scanner) report(entry *zeroconf.ServiceEntry, mgr *manager.Manager) {
	identifier := strings.TrimSuffix(entry.HostName, ".")
	if identifier == "" {
		identifier = entry.Instance
	}
	if identifier == "" {
		return
	}

	name := entry.Instance
	if name == "" {
		name = identifier
	}

	logging.Debug("mdns hub observed", zap.String("identifier", identifier), zap.String("name", name))
	mgr.Observe(identifier, name, nil, legoMarker, 0)
}

// Run repeatedly scans every interval until ctx is cancelled, the pattern
// cmd/legohub-monitor's discover subcommand uses to keep Manager's list fresh
// without a dedicated long-lived mDNS watch API from zeroconf.
func (s *Scanner) Run(ctx context.Context, mgr *manager.Manager, interval time.Duration) {
	for {
		if err := s.Scan(ctx, mgr); err != nil {
			logging.Warn("mdns scan failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
