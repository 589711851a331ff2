package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/legohub/internal/config"
	"github.com/muurk/legohub/internal/hub"
	"github.com/muurk/legohub/internal/monitor"
	"github.com/muurk/legohub/internal/transport"
)

var (
	transportKind string
	addr          string
	service       string
	hubID         string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Connect to a hub and render its live snapshot",
	Long: `Dial a transport, drive a hub.Hub over it, and render the hub's
live snapshot as a terminal dashboard until it is quit.`,
	Example: `  # Watch a hub over the BLE-shaped websocket transport
  legohub-monitor watch --transport ws --addr ws://localhost:5051

  # Watch a hub over the accessory line transport
  legohub-monitor watch --transport line --addr localhost:5050`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&transportKind, "transport", "ws", "transport to dial: ws or line")
	watchCmd.Flags().StringVar(&addr, "addr", "", "transport address (ws:// URL for --transport ws, host:port for --transport line)")
	watchCmd.Flags().StringVar(&service, "service", hub.ServiceLWP3, "GATT service UUID reported by the ws transport at connect time")
	watchCmd.Flags().StringVar(&hubID, "id", "hub", "identifier shown in the dashboard header")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if addr == "" {
		return fmt.Errorf("--addr is required")
	}

	var adapter transport.Adapter
	switch transportKind {
	case "ws":
		adapter = transport.NewWSTransport(addr, service)
	case "line":
		adapter = transport.NewLineTransport(addr)
	default:
		return fmt.Errorf("unknown transport %q (want ws or line)", transportKind)
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	h := hub.New(hubID, adapter,
		hub.WithConnectTimeout(registry.Engine.ConnectTimeout()),
		hub.WithRSSIInterval(registry.Engine.RSSIPollInterval()),
		hub.WithBatteryDampenWindow(registry.Engine.BatteryDampenWindow()),
		hub.WithBootstrapRetries(registry.Engine.BootstrapRetryCount),
	)
	defer h.Stop()

	m := monitor.New(hubID, h)
	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}
