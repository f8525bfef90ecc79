package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
)

// envPrefix mirrors the teacher's XRPLD_ environment override prefix,
// renamed for this module.
const envPrefix = "HEDERA"

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads a TOML configuration document from r — the shape
// ClientFromConfig accepts directly, e.g. an embedded string or a
// network-fetched secret.
func Load(r io.Reader) (*Config, error) {
	v := newViper()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return unmarshal(v, "")
}

// LoadFile reads the TOML configuration document at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	v := newViper()
	v.SetConfigType("toml")
	if err := v.ReadConfig(f); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return unmarshal(v, path)
}

// LoadFromDir reads DefaultConfigPath inside dir.
func LoadFromDir(dir string) (*Config, error) {
	return LoadFile(ConfigPathFromDir(dir))
}

func unmarshal(v *viper.Viper, path string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.configPath = path
	return &cfg, nil
}
