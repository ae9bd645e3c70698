package config

import (
	"encoding/json"
	"os"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/flagx"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/timex"
)

// JsonConfig is the on-disk shape of the backend config. Durations accept
// "30m" or integer nanoseconds. Zero values leave the current setting alone.
type JsonConfig struct {
	EndpointAddr          string            `json:"endpoint_addr"`
	SecretKey             string            `json:"secret_key"`
	TokenValidityDuration timex.Duration    `json:"token_validity_duration"`
	Users                 map[string]string `json:"users"`
	Plans                 []string          `json:"plans"`
	DeclinedPlan          string            `json:"declined_plan"`
	ProcessingRounds      *int              `json:"processing_rounds"`
	LoginRateLimit        int               `json:"login_rate_limit"`
	TrustProxy            *bool             `json:"trust_proxy"`
	CORSOrigins           []string          `json:"cors_origins"`
	LogLevel              string            `json:"log_level"`
}

// parseJson loads the file named by -c/-config (or $FITFLOW_CONFIG).
// An unreadable or invalid file panics, as the other loaders do.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if len(c.Users) > 0 {
		config.Users = c.Users
	}
	if len(c.Plans) > 0 {
		config.Plans = c.Plans
	}
	if c.DeclinedPlan != "" {
		config.DeclinedPlan = c.DeclinedPlan
	}
	if c.ProcessingRounds != nil {
		config.ProcessingRounds = *c.ProcessingRounds
	}
	if c.LoginRateLimit > 0 {
		config.LoginRateLimit = c.LoginRateLimit
	}
	if c.TrustProxy != nil {
		config.TrustProxy = *c.TrustProxy
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
