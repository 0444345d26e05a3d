package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the catalog API
//	-f string   SQLite DSN of the session cache
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the catalog API")
	fs.StringVar(&cfg.CacheDSN, "f", cfg.CacheDSN, "session cache DSN")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
