package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookstore/internal/flagx"
	"github.com/dmitrijs2005/bookstore/internal/timex"
)

// ConfigFileEnv names the variable consulted when no -c/-config flag is given.
const ConfigFileEnv = "BOOKSTORE_CONFIG"

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings such as "30m" or integer nanoseconds (see timex.Duration).
// Pointer fields distinguish "absent" from the zero value.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	Algorithm                   *string         `json:"algorithm"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	ShutdownTimeout             *timex.Duration `json:"shutdown_timeout"`
	ProtectMutations            *bool           `json:"protect_mutations"`
	APIPrefix                   *string         `json:"api_prefix"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays config with the JSON file selected by -c/-config or
// BOOKSTORE_CONFIG. Keys missing from the file keep their current value.
// Unreadable or malformed files panic: a server must not start on a config
// it could not read.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath(ConfigFileEnv)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Algorithm, c.Algorithm)
	setString(&config.APIPrefix, c.APIPrefix)
	setString(&config.LogLevel, c.LogLevel)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.ProtectMutations != nil {
		config.ProtectMutations = *c.ProtectMutations
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
