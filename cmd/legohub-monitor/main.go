// Legohub-monitor is a live terminal dashboard for a single connected hub.
//
// It dials either the BLE-shaped WebSocket transport or the accessory line
// transport, drives an internal/hub.Hub over it, and renders the hub's
// snapshot -- attached devices, battery, RSSI -- as it changes.
//
// Usage:
//
//	legohub-monitor watch --transport ws --addr ws://localhost:5051
//	legohub-monitor watch --transport line --addr localhost:5050
//	legohub-monitor discover
//
// See 'legohub-monitor watch --help'/'discover --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/legohub/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "legohub-monitor",
	Short:   "Live dashboard for a connected LEGO hub",
	Long:    "A standalone terminal dashboard that drives internal/hub.Hub over either reference transport and renders its live snapshot.",
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("legohub-monitor %s (commit: %s)\n", version.Version, version.Commit)
	},
}
