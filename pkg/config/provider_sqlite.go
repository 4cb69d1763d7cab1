package config

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	cfg := &ConfigData{}

	err := s.db.QueryRow(`SELECT screw_max_angle, edge_min_angle FROM classifier LIMIT 1`).
		Scan(&cfg.Classifier.ScrewMaxAngle, &cfg.Classifier.EdgeMinAngle)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error reading classifier config: %w", err)
	}

	err = s.db.QueryRow(`SELECT listen_addr FROM ingest LIMIT 1`).Scan(&cfg.Ingest.ListenAddr)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error reading ingest config: %w", err)
	}

	if err := s.loadSinks(cfg); err != nil {
		return nil, err
	}
	if err := s.loadControllers(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s *SQLiteProvider) loadSinks(cfg *ConfigData) error {
	rows, err := s.db.Query(`SELECT type, enabled, path, connection_string FROM sinks`)
	if err != nil {
		return fmt.Errorf("error reading sink config: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sinkType string
		var enabled bool
		var path, connStr sql.NullString
		if err := rows.Scan(&sinkType, &enabled, &path, &connStr); err != nil {
			return fmt.Errorf("error scanning sink row: %w", err)
		}
		if !enabled {
			continue
		}
		switch sinkType {
		case "console":
			cfg.Sinks.Console = &ConsoleData{Enabled: true}
		case "sqlite":
			cfg.Sinks.SQLite = &SQLiteData{Path: path.String}
		case "timescaledb":
			cfg.Sinks.TimescaleDB = &TimescaleDBData{ConnectionString: connStr.String}
		default:
			return fmt.Errorf("unknown sink type in config: %s", sinkType)
		}
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadControllers(cfg *ConfigData) error {
	rows, err := s.db.Query(`SELECT type, listen_addr, port FROM controllers`)
	if err != nil {
		return fmt.Errorf("error reading controller config: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ctrlType string
		var listenAddr sql.NullString
		var port sql.NullInt64
		if err := rows.Scan(&ctrlType, &listenAddr, &port); err != nil {
			return fmt.Errorf("error scanning controller row: %w", err)
		}
		switch ctrlType {
		case "rest":
			cfg.Controllers = append(cfg.Controllers, ControllerData{
				Type: ctrlType,
				RESTServer: &RESTServerData{
					ListenAddr: listenAddr.String,
					Port:       int(port.Int64),
				},
			})
		default:
			return fmt.Errorf("unknown controller type in config: %s", ctrlType)
		}
	}
	return rows.Err()
}

// IsReadOnly returns false since SQLite databases support writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
