package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags below are considered; everything else in os.Args is
// ignored. Integer durations are seconds and must be positive; they
// replace the current value only when the flag is given, so sub-second
// values from JSON survive. Parse errors panic.
//
//	-a string   backend base URL
//	-d string   local database path
//	-i int      online check interval in seconds
//	-t int      request timeout in seconds
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "backend base URL")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "local database path")
	onlineCheckInterval := fs.Int("i", int(config.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			config.OnlineCheckInterval = positiveSeconds("i", *onlineCheckInterval)
		case "t":
			config.RequestTimeout = positiveSeconds("t", *requestTimeout)
		}
	})
}

func positiveSeconds(name string, n int) time.Duration {
	if n <= 0 {
		panic(fmt.Errorf("flag -%s: must be a positive number of seconds, got %d", name, n))
	}
	return time.Duration(n) * time.Second
}
