package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/legohub/internal/config"
	"github.com/muurk/legohub/internal/discoveryobs"
	"github.com/muurk/legohub/internal/manager"
)

var discoverInterval time.Duration

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List LEGO hubs visible over mDNS on the line transport",
	Long: "Browses for hubs advertising under " + discoveryobs.ServiceType + " and prints " +
		"the known-hub table every interval until interrupted. Honors " +
		"preferences.auto_discover/discover_timeout from the config registry " +
		"unless overridden by --interval.",
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().DurationVar(&discoverInterval, "interval", 5*time.Second, "time between scan passes (overrides preferences.discover_timeout)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !registry.Preferences.AutoDiscover {
		return fmt.Errorf("mDNS discovery is disabled (preferences.auto_discover: false); enable it in the config registry to use this command")
	}

	interval := discoverInterval
	if !cmd.Flags().Changed("interval") {
		if d := registry.Preferences.DiscoverTimeoutDuration(); d > 0 {
			interval = d
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	mgr := manager.New()
	defer mgr.Stop()

	scanner := discoveryobs.NewScanner()
	scanner.Timeout = interval
	go scanner.Run(ctx, mgr, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	printTable(mgr)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			printTable(mgr)
		}
	}
}

func printTable(mgr *manager.Manager) {
	hubs := mgr.List()
	fmt.Printf("\n%d hub(s) known:\n", len(hubs))

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTIFIER\tNAME\tCONNECTED\tLAST SEEN")
	for _, h := range hubs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", h.Identifier, h.Name, h.Connected, h.LastSeen.Format(time.RFC3339))
	}
	w.Flush()
}
