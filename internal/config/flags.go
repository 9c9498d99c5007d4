package config

import (
	"flag"
	"os"
	"time"

	"github.com/somukhan9/dapper-identity/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-o int      maximum open connections
//	-i int      maximum idle connections
//	-l int      connection max lifetime, minutes
//	-t int      default statement timeout, seconds (0 disables)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and then converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-o", "-i", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxOpenConns, "o", config.MaxOpenConns, "max open connections")
	fs.IntVar(&config.MaxIdleConns, "i", config.MaxIdleConns, "max idle connections")

	connMaxLifetime := fs.Int("l", int(config.ConnMaxLifetime.Minutes()), "conn_max_lifetime (in minutes)")
	commandTimeout := fs.Int("t", int(config.CommandTimeout.Seconds()), "command_timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ConnMaxLifetime = time.Duration(*connMaxLifetime) * time.Minute
	config.CommandTimeout = time.Duration(*commandTimeout) * time.Second
}
