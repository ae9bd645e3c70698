// Package config handles configuration of the development backend:
// defaults, then environment variables (optionally from .env), then an
// optional JSON file, then command-line flags.
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the FitFlow development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - Users: demo accounts, username to password.
//   - Plans / DeclinedPlan: purchasable plans, and one plan whose card is always declined.
//   - ProcessingRounds: confirmation calls answered "processing" before settlement.
//   - LoginRateLimit: login requests allowed per client IP and minute.
//   - TrustProxy: take the client IP from proxy headers when rate limiting.
//   - CORSOrigins: browser origins allowed to call the API; empty disables CORS.
type Config struct {
	EndpointAddr          string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	Users                 map[string]string
	Plans                 []string
	DeclinedPlan          string
	ProcessingRounds      int
	LoginRateLimit        int
	TrustProxy            bool
	CORSOrigins           []string
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and demo account are not meant for anything but local use.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 30 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
	c.Users = map[string]string{"demo": "demo1234"}
	c.Plans = []string{"monthly", "annual"}
	c.DeclinedPlan = "declined"
	c.ProcessingRounds = 1
	c.LoginRateLimit = 20
	c.CORSOrigins = []string{"http://localhost:3000"}
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, environment, JSON file and
// flags, later sources winning.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
