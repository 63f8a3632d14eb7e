package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/docusage/internal/flagx"
)

// Config holds runtime settings for the DocuSage CLI.
type Config struct {
	ServerEndpointAddr string        `env:"DOCUSAGE_SERVER"`
	RequestTimeout     time.Duration `env:"DOCUSAGE_TIMEOUT"`
	TokenFile          string        `env:"DOCUSAGE_TOKEN_FILE"`

	// MaxFileBytes sizes the receive limit for downloads; keep it in step
	// with the server's MAX_UPLOAD_BYTES.
	MaxFileBytes int64 `env:"DOCUSAGE_MAX_FILE_BYTES"`
}

// userConfigDir is a seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 30 * time.Second
	c.MaxFileBytes = 16 << 20
	c.TokenFile = ".docusage_token"
	if dir, err := userConfigDir(); err == nil {
		c.TokenFile = filepath.Join(dir, "docusage", "token")
	}
}

// LoadConfig builds a Config from defaults, JSON, environment and flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
