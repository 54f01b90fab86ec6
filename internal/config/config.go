package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Catalog CatalogConfig `toml:"catalog"`
}

type GeneralConfig struct {
	Language  string `toml:"language"`
	ExportDir string `toml:"export_dir"`
}

type CatalogConfig struct {
	// League is the poe.ninja league slug prices are fetched for.
	League string `toml:"league"`
	// PricesFile is a scraped price document watched for changes; empty
	// means live fetch only.
	PricesFile string `toml:"prices_file"`
	// RefreshSeconds is the polling interval for the prices file.
	RefreshSeconds int `toml:"refresh_seconds"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Language:  "en",
			ExportDir: ".",
		},
		Catalog: CatalogConfig{
			League:         "standard",
			RefreshSeconds: 30,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "kt-poe2-tool", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
