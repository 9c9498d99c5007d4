package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/somukhan9/dapper-identity/internal/flagx"
	"github.com/somukhan9/dapper-identity/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30m"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	MaxOpenConns    int            `json:"max_open_conns"`
	MaxIdleConns    int            `json:"max_idle_conns"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime"`
	CommandTimeout  timex.Duration `json:"command_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson reads and unmarshals it into a
// JsonConfig and copies the resulting values into the target Config. If the
// file cannot be read or contains invalid JSON, the function panics.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.MaxOpenConns = c.MaxOpenConns
	config.MaxIdleConns = c.MaxIdleConns
	config.ConnMaxLifetime = time.Duration(c.ConnMaxLifetime.Duration)
	config.CommandTimeout = time.Duration(c.CommandTimeout.Duration)
}
