package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type     DatabaseType
	SQLite   SQLiteConfig
	Postgres PostgresConfig
}

type SQLiteConfig struct {
	Path string
}

type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
	TimeZone string
}

// GetDatabaseConfig builds the database configuration from TIENDA_DB_TYPE and TIENDA_PG_*.
func GetDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: DatabaseType(getEnv("TIENDA_DB_TYPE", string(DatabaseTypeSQLite))),
		SQLite: SQLiteConfig{
			Path: GetDBPath(),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("TIENDA_PG_HOST", "localhost"),
			Port:     getEnvAsInt("TIENDA_PG_PORT", 5432),
			Database: getEnv("TIENDA_PG_DATABASE", "tienda"),
			Username: getEnv("TIENDA_PG_USER", "tienda"),
			Password: os.Getenv("TIENDA_PG_PASSWORD"),
			SSLMode:  getEnv("TIENDA_PG_SSLMODE", "disable"),
			TimeZone: getEnv("TIENDA_PG_TIMEZONE", "UTC"),
		},
	}
}

// NewSQLiteConfig returns a SQLite configuration pointing at path.
func NewSQLiteConfig(path string) *DatabaseConfig {
	return &DatabaseConfig{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: path},
	}
}

// GetDSN returns the data source name for the database
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypePostgreSQL:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Postgres.Host,
			c.Postgres.Username,
			c.Postgres.Password,
			c.Postgres.Database,
			c.Postgres.Port,
			c.Postgres.SSLMode,
			c.Postgres.TimeZone,
		)
	default:
		return c.SQLite.Path + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=1"
	}
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLite path cannot be empty")
		}
	case DatabaseTypePostgreSQL:
		if c.Postgres.Host == "" {
			return fmt.Errorf("PostgreSQL host cannot be empty")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("PostgreSQL database name cannot be empty")
		}
		if c.Postgres.Username == "" {
			return fmt.Errorf("PostgreSQL username cannot be empty")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			return fmt.Errorf("PostgreSQL port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists creates the folder holding the SQLite file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.IsSQLite() {
		return os.MkdirAll(filepath.Dir(c.SQLite.Path), 0o755)
	}
	return nil
}
