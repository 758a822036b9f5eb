// Package config assembles the client configuration from defaults, an
// optional JSON file, environment variables and command-line flags, in that
// order.
package config

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/asorokin/decat/internal/client/prefs"
	"github.com/asorokin/decat/internal/client/session"
	"github.com/asorokin/decat/internal/flagx"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddr string
	PrefsPath  string
	TokenPath  string
}

func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8787"
	c.PrefsPath = prefs.DefaultPath()
	c.TokenPath = session.DefaultTokenPath()
}

type jsonConfig struct {
	ServerAddr string `json:"server_addr"`
	PrefsPath  string `json:"prefs_path"`
	TokenPath  string `json:"token_path"`
}

func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &jsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerAddr != "" {
		config.ServerAddr = c.ServerAddr
	}
	if c.PrefsPath != "" {
		config.PrefsPath = c.PrefsPath
	}
	if c.TokenPath != "" {
		config.TokenPath = c.TokenPath
	}
}

// envConfig mirrors the fields that may be supplied via DECAT_* environment
// variables (e.g. DECAT_SERVER_ADDR).
type envConfig struct {
	ServerAddr string `envconfig:"SERVER_ADDR"`
	PrefsPath  string `envconfig:"PREFS_PATH"`
	TokenPath  string `envconfig:"TOKEN_PATH"`
}

func parseEnv(config *Config) {
	var e envConfig
	if err := envconfig.Process("decat", &e); err != nil {
		panic(err)
	}

	if e.ServerAddr != "" {
		config.ServerAddr = e.ServerAddr
	}
	if e.PrefsPath != "" {
		config.PrefsPath = e.PrefsPath
	}
	if e.TokenPath != "" {
		config.TokenPath = e.TokenPath
	}
}

// parseFlags populates Config fields from command-line flags:
//
//	-a string   server base URL
//	-f string   preferences file path
//	-k string   session token cache path
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "server base URL")
	fs.StringVar(&config.PrefsPath, "f", config.PrefsPath, "preferences file path")
	fs.StringVar(&config.TokenPath, "k", config.TokenPath, "session token cache path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
