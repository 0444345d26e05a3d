package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays config with BOOKSTORE_* environment variables.
//
//	BOOKSTORE_HTTP_ADDR              HTTP bind address
//	BOOKSTORE_GRPC_ADDR              gRPC health bind address ("" disables)
//	BOOKSTORE_DATABASE_DSN           PostgreSQL DSN
//	BOOKSTORE_SECRET_KEY             JWT HMAC key
//	BOOKSTORE_ALGORITHM              JWT algorithm
//	BOOKSTORE_TOKEN_EXPIRE_MINUTES   access token lifetime, minutes
//	BOOKSTORE_SHUTDOWN_TIMEOUT       Go duration, e.g. "15s"
//	BOOKSTORE_PROTECT_MUTATIONS      bool
//	BOOKSTORE_API_PREFIX             route prefix
//	BOOKSTORE_LOG_LEVEL              debug|info|warn|error
//
// Malformed numeric, bool or duration values are logged and ignored.
func parseEnv(config *Config) {
	config.EndpointAddrHTTP = getString("BOOKSTORE_HTTP_ADDR", config.EndpointAddrHTTP)
	config.EndpointAddrGRPC = getString("BOOKSTORE_GRPC_ADDR", config.EndpointAddrGRPC)
	config.DatabaseDSN = getString("BOOKSTORE_DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getString("BOOKSTORE_SECRET_KEY", config.SecretKey)
	config.Algorithm = getString("BOOKSTORE_ALGORITHM", config.Algorithm)
	config.APIPrefix = getString("BOOKSTORE_API_PREFIX", config.APIPrefix)
	config.LogLevel = getString("BOOKSTORE_LOG_LEVEL", config.LogLevel)

	minutes := getInt("BOOKSTORE_TOKEN_EXPIRE_MINUTES", int(config.AccessTokenValidityDuration.Minutes()))
	config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute

	config.ShutdownTimeout = getDuration("BOOKSTORE_SHUTDOWN_TIMEOUT", config.ShutdownTimeout)
	config.ProtectMutations = getBool("BOOKSTORE_PROTECT_MUTATIONS", config.ProtectMutations)
}

func getString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}
