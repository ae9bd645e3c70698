package config

import (
	"flag"
	"os"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   bind address (e.g. ":8080")
//	-s string   token signing secret
//	-t int      token validity, minutes
//	-p int      processing rounds before settlement
//	-r int      login requests per minute per IP
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-p", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.ProcessingRounds, "p", config.ProcessingRounds, "processing rounds before a payment settles")
	fs.IntVar(&config.LoginRateLimit, "r", config.LoginRateLimit, "login requests per minute per IP")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
