package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays FITFLOW_* environment variables. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
//
//	FITFLOW_ADDR               bind address
//	FITFLOW_SECRET_KEY         token signing secret
//	FITFLOW_TOKEN_TTL          token lifetime ("30m")
//	FITFLOW_DEMO_USERS         "user:pass,user2:pass2"
//	FITFLOW_PLANS              "monthly,annual"
//	FITFLOW_DECLINED_PLAN      plan that is always declined
//	FITFLOW_PROCESSING_ROUNDS  processing answers before settlement
//	FITFLOW_LOGIN_RATE_LIMIT   login requests per minute per IP
//	FITFLOW_TRUST_PROXY        "true" behind a reverse proxy
//	FITFLOW_CORS_ORIGINS       "https://app.example,http://localhost:3000"
//	FITFLOW_LOG_LEVEL          debug|info|warn|error
func parseEnv(c *Config) {
	_ = godotenv.Load()

	c.EndpointAddr = getEnv("FITFLOW_ADDR", c.EndpointAddr)
	c.SecretKey = getEnv("FITFLOW_SECRET_KEY", c.SecretKey)
	c.TokenValidityDuration = getEnvAsDuration("FITFLOW_TOKEN_TTL", c.TokenValidityDuration)
	if users := parseUsers(getEnv("FITFLOW_DEMO_USERS", "")); len(users) > 0 {
		c.Users = users
	}
	if plans := splitList(getEnv("FITFLOW_PLANS", "")); len(plans) > 0 {
		c.Plans = plans
	}
	c.DeclinedPlan = getEnv("FITFLOW_DECLINED_PLAN", c.DeclinedPlan)
	c.ProcessingRounds = getEnvAsInt("FITFLOW_PROCESSING_ROUNDS", c.ProcessingRounds)
	c.LoginRateLimit = getEnvAsInt("FITFLOW_LOGIN_RATE_LIMIT", c.LoginRateLimit)
	c.TrustProxy = getEnvAsBool("FITFLOW_TRUST_PROXY", c.TrustProxy)
	if origins := splitList(getEnv("FITFLOW_CORS_ORIGINS", "")); len(origins) > 0 {
		c.CORSOrigins = origins
	}
	c.LogLevel = getEnv("FITFLOW_LOG_LEVEL", c.LogLevel)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseUsers reads "name:password" pairs; malformed pairs are skipped.
func parseUsers(s string) map[string]string {
	users := map[string]string{}
	for _, pair := range splitList(s) {
		name, pw, ok := strings.Cut(pair, ":")
		if !ok || name == "" || pw == "" {
			continue
		}
		users[name] = pw
	}
	return users
}
