package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookstore/internal/flagx"
	"github.com/dmitrijs2005/bookstore/internal/timex"
)

// ConfigFileEnv names the variable consulted when no -c/-config flag is given.
const ConfigFileEnv = "BOOKSTORE_CLI_CONFIG"

// JsonConfig is the on-disk shape of the CLI config file:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000/api/v1",
//	  "request_timeout": "5s",
//	  "cache_dsn": "/home/me/.bookstore.db",
//	  "online_check_interval": "3s"
//	}
type JsonConfig struct {
	ServerBaseURL       *string         `json:"server_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	CacheDSN            *string         `json:"cache_dsn"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the selected JSON file, if any. Malformed or
// unreadable files panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(ConfigFileEnv)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.ServerBaseURL != nil {
		cfg.ServerBaseURL = *c.ServerBaseURL
	}
	if c.RequestTimeout != nil {
		cfg.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.CacheDSN != nil {
		cfg.CacheDSN = *c.CacheDSN
	}
	if c.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}
}
