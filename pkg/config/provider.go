// Package config defines the configuration model for the dislotrace daemon
// and providers that load it from YAML files or SQLite databases.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// IsReadOnly reports whether the backing store can be written
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Classifier  ClassifierData   `json:"classifier,omitempty" yaml:"classifier,omitempty"`
	Ingest      IngestData       `json:"ingest" yaml:"ingest"`
	Sinks       SinkData         `json:"sinks,omitempty" yaml:"sinks,omitempty"`
	Controllers []ControllerData `json:"controllers,omitempty" yaml:"controllers,omitempty"`
}

// ClassifierData holds the character classification thresholds in degrees.
// Zero values select the conventional 30°/60° bands.
type ClassifierData struct {
	ScrewMaxAngle float64 `json:"screw_max_angle,omitempty" yaml:"screw_max_angle,omitempty"`
	EdgeMinAngle  float64 `json:"edge_min_angle,omitempty" yaml:"edge_min_angle,omitempty"`
}

// IngestData holds configuration for the frame ingest listener
type IngestData struct {
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
}

// SinkData holds the configuration for various result sink backends
type SinkData struct {
	Console     *ConsoleData     `json:"console,omitempty" yaml:"console,omitempty"`
	SQLite      *SQLiteData      `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty" yaml:"timescaledb,omitempty"`
}

// ConsoleData enables the human-readable per-frame summary sink
type ConsoleData struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// SQLiteData configures the local SQLite result sink
type SQLiteData struct {
	Path string `json:"path" yaml:"path"`
}

// TimescaleDBData configures the TimescaleDB result sink
type TimescaleDBData struct {
	ConnectionString string `json:"connection_string" yaml:"connection_string"`
}

// ControllerData holds the configuration for various controller backends
type ControllerData struct {
	Type       string          `json:"type,omitempty" yaml:"type,omitempty"`
	RESTServer *RESTServerData `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// RESTServerData configures the read-only HTTP API
type RESTServerData struct {
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
}
