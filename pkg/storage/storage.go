// Package storage describes where content records are kept.
package storage

import (
	"fmt"
	"strings"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config captures the storage connection. Memory needs no DSN.
type Config struct {
	Driver       string `json:"driver"`
	DSN          string `json:"dsn,omitempty"`
	MaxOpenConns int    `json:"maxOpenConns,omitempty"`
	Debug        bool   `json:"debug,omitempty"`
}

// NormalizedDriver returns the lower-cased driver, mapping "sqlite3" and
// "pg"/"postgresql" onto their canonical names.
func (c Config) NormalizedDriver() string {
	switch driver := strings.ToLower(strings.TrimSpace(c.Driver)); driver {
	case "sqlite3":
		return DriverSQLite
	case "pg", "postgresql":
		return DriverPostgres
	default:
		return driver
	}
}

// Document renders c as the object checked against ConfigJSONSchema.
func (c Config) Document() map[string]any {
	doc := map[string]any{"driver": c.NormalizedDriver()}
	if c.DSN != "" {
		doc["dsn"] = c.DSN
	}
	if c.MaxOpenConns != 0 {
		doc["maxOpenConns"] = c.MaxOpenConns
	}
	if c.Debug {
		doc["debug"] = true
	}
	return doc
}

func (c Config) String() string {
	return fmt.Sprintf("%s(%s)", c.NormalizedDriver(), redact(c.DSN))
}

// redact hides the password of a URL style DSN.
func redact(dsn string) string {
	scheme := strings.Index(dsn, "://")
	at := strings.LastIndex(dsn, "@")
	if scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		creds = creds[:colon] + ":***"
	}
	return dsn[:scheme+3] + creds + dsn[at:]
}
