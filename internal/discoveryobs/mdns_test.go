package discoveryobs

import (
	"testing"

	"github.com/grandcat/zeroconf"

	"github.com/muurk/legohub/internal/manager"
)

func TestReportRecordsHubByHostName(t *testing.T) {
	m := manager.New()
	defer m.Stop()

	s := NewScanner()
	s.report(&zeroconf.ServiceEntry{
		HostName: "legohub-0042.local.",
		Instance: "Technic Move Hub",
	}, m)

	hubs := m.List()
	if len(hubs) != 1 || hubs[0].Identifier != "legohub-0042.local" {
		t.Fatalf("List() = %+v, want one hub legohub-0042.local", hubs)
	}
}

func TestReportFallsBackToInstanceWhenHostNameEmpty(t *testing.T) {
	m := manager.New()
	defer m.Stop()

	s := NewScanner()
	s.report(&zeroconf.ServiceEntry{
		Instance: "spike-hub-7",
	}, m)

	hubs := m.List()
	if len(hubs) != 1 || hubs[0].Identifier != "spike-hub-7" {
		t.Fatalf("List() = %+v, want one hub spike-hub-7", hubs)
	}
}

func TestReportIgnoresEntryWithNoIdentifier(t *testing.T) {
	m := manager.New()
	defer m.Stop()

	s := NewScanner()
	s.report(&zeroconf.ServiceEntry{}, m)

	if hubs := m.List(); len(hubs) != 0 {
		t.Fatalf("List() = %+v, want no hub recorded", hubs)
	}
}
