// Legohub-sim is a stand-in hub for exercising internal/transport's two
// reference adapters without real LEGO hardware nearby.
//
// It serves the accessory line transport as plain TCP and the BLE-shaped
// transport as a WebSocket upgrade, and replays one of two canned frame
// scripts to every connection: an LWP3 Technic-hub sequence or a SPIKE
// Prime JSON telemetry sequence.
//
// Usage:
//
//	legohub-sim serve [flags]
//
// See 'legohub-sim serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/legohub/internal/server"
	"github.com/muurk/legohub/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "legohub-sim",
	Short:   "LEGO hub protocol simulator",
	Long:    "A standalone simulator that speaks the line and BLE-shaped transports internal/transport dials, replaying a canned LWP3 or SPIKE Prime frame script to every connection.",
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var (
	host     string
	linePort int
	wsPort   int
	logLevel string
	scenario string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simulator listeners",
	Long: `Start the line and BLE-shaped listeners and replay a canned scenario
to every connection that accepts.`,
	Example: `  # Replay the default LWP3 Technic-hub scenario
  legohub-sim serve

  # Replay the SPIKE Prime JSON telemetry scenario on custom ports
  legohub-sim serve --scenario spike-json --line-port 5555 --ws-port 5556`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&linePort, "line-port", 5050, "accessory line transport port")
	serveCmd.Flags().IntVar(&wsPort, "ws-port", 5051, "BLE-shaped websocket transport port")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&scenario, "scenario", "lwp3", "scenario to replay: lwp3 or spike-json")
}

func runServe(cmd *cobra.Command, args []string) error {
	var scn server.Scenario
	switch scenario {
	case "lwp3":
		scn = server.DefaultLWP3Scenario()
	case "spike-json":
		scn = server.DefaultSpikeJSONScenario()
	default:
		return fmt.Errorf("unknown scenario %q (want lwp3 or spike-json)", scenario)
	}

	config := &server.Config{
		Host:     host,
		LinePort: linePort,
		WSPort:   wsPort,
		LogLevel: logLevel,
	}

	srv, err := server.New(config, scn)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}

	return srv.Start()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("legohub-sim %s (commit: %s)\n", version.Version, version.Commit)
	},
}
