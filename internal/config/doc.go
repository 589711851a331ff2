// Package config provides operator configuration for the legohub engine.
//
// This package manages a YAML-based configuration file that stores
// runtime-tunable engine parameters -- connect timeout, RSSI poll
// interval, battery dampening window, log level -- following OS-specific
// conventions for storage location. It deliberately does not persist
// paired hub identifiers or any other per-device metadata: a hub's
// identity is established fresh each run by discovery.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/legohub/config.yaml or $HOME/.config/legohub/config.yaml
//   - macOS: $HOME/.config/legohub/config.yaml
//   - Windows: %LOCALAPPDATA%\legohub\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h := hub.New(id, adapter,
//	    hub.WithConnectTimeout(registry.Engine.ConnectTimeout()),
//	    hub.WithRSSIInterval(registry.Engine.RSSIPollInterval()),
//	)
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
