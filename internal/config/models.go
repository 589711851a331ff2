package config

import "time"

// Registry represents the entire user configuration file. It holds
// operator-tunable engine parameters only; paired hub identifiers are
// never persisted here.
type Registry struct {
	Version     int             `yaml:"version"`
	Engine      *EngineTunables `yaml:"engine,omitempty"`
	Preferences *Preferences    `yaml:"preferences,omitempty"`
}

// EngineTunables controls the hub runtime's connect/poll/dampening/retry
// behaviour. Every field maps directly onto a hub.Option the runtime
// would otherwise default to a hard-coded constant: ConnectTimeoutSeconds
// to hub.WithConnectTimeout, RSSIPollIntervalSeconds to
// hub.WithRSSIInterval, BatteryDampenWindowSeconds to
// hub.WithBatteryDampenWindow, BootstrapRetryCount to
// hub.WithBootstrapRetries.
type EngineTunables struct {
	ConnectTimeoutSeconds      int `yaml:"connect_timeout_seconds"`       // deadline for EventServicesDiscovered after Connect
	RSSIPollIntervalSeconds    int `yaml:"rssi_poll_interval_seconds"`    // period between ReadRSSI calls once connected
	BatteryDampenWindowSeconds int `yaml:"battery_dampen_window_seconds"` // max silent interval between battery events
	BootstrapRetryCount        int `yaml:"bootstrap_retry_count"`         // subscription-bootstrap retries before giving up
}

// ConnectTimeout returns the configured connect deadline as a Duration.
func (e *EngineTunables) ConnectTimeout() time.Duration {
	return time.Duration(e.ConnectTimeoutSeconds) * time.Second
}

// RSSIPollInterval returns the configured RSSI poll period as a Duration.
func (e *EngineTunables) RSSIPollInterval() time.Duration {
	return time.Duration(e.RSSIPollIntervalSeconds) * time.Second
}

// BatteryDampenWindow returns the configured battery dampening window as
// a Duration.
func (e *EngineTunables) BatteryDampenWindow() time.Duration {
	return time.Duration(e.BatteryDampenWindowSeconds) * time.Second
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool   `yaml:"auto_discover"`    // enable mDNS discovery on startup
	DiscoverTimeout int    `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
	LogLevel        string `yaml:"log_level,omitempty"`
}

// DiscoverTimeoutDuration returns the configured mDNS discovery timeout
// as a Duration, for discoveryobs.Scanner.Timeout.
func (p *Preferences) DiscoverTimeoutDuration() time.Duration {
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// NewRegistry creates a new Registry with default values matching the
// constants hub.New falls back to when no config file is present.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Engine: &EngineTunables{
			ConnectTimeoutSeconds:      10,
			RSSIPollIntervalSeconds:    5,
			BatteryDampenWindowSeconds: 120,
			BootstrapRetryCount:        3,
		},
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			LogLevel:        "",
		},
	}
}
