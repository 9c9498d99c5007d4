package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-d", "postgres://app:app@db:5432/idp",
				"-o", "16", "-i", "8", "-l", "60", "-t", "10",
			},
			expected: &Config{
				DatabaseDSN:     "postgres://app:app@db:5432/idp",
				MaxOpenConns:    16,
				MaxIdleConns:    8,
				ConnMaxLifetime: 60 * time.Minute,
				CommandTimeout:  10 * time.Second,
			},
		},
		{
			name: "timeout disabled",
			args: []string{"cmd", "-d", "db", "-t", "0"},
			expected: &Config{
				DatabaseDSN:     "db",
				ConnMaxLifetime: 0,
				CommandTimeout:  0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
