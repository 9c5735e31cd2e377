// Package config loads tool configuration from an optional loctab.toml
// project file with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the project configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFile = "loctab.toml"

type Config struct {
	// TablePath is the spreadsheet holding the translation table.
	TablePath string `toml:"table"`
	// LocalesDir receives the generated nested documents.
	LocalesDir string `toml:"locales_dir"`
	// JSONDir holds the flat per-locale JSON dictionaries.
	JSONDir string `toml:"json_dir"`
	// Locales lists the locale codes of the JSON workflow, baseline first
	// by convention.
	Locales []string `toml:"locales"`
	// Baseline drives key order when merging JSON dictionaries.
	Baseline string `toml:"baseline"`
}

// Load reads configuration from path (or DefaultFile when path is empty),
// then applies LOCTAB_* environment overrides. A missing DefaultFile is
// fine; a missing explicit path is an error. A .env file is honored when
// present.
func Load(path string) (*Config, error) {
	// .env is optional; variables may come from the environment itself.
	_ = godotenv.Load()

	cfg := &Config{
		TablePath:  "translations.xlsx",
		LocalesDir: ".",
		JSONDir:    "translations",
		Locales:    []string{"zh_cn", "en_us", "de_de", "es_es", "it_it", "ru_ru"},
		Baseline:   "zh_cn",
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No project file; defaults plus env apply.
	default:
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOCTAB_TABLE"); v != "" {
		cfg.TablePath = v
	}
	if v := os.Getenv("LOCTAB_LOCALES_DIR"); v != "" {
		cfg.LocalesDir = v
	}
	if v := os.Getenv("LOCTAB_JSON_DIR"); v != "" {
		cfg.JSONDir = v
	}
	if v := os.Getenv("LOCTAB_BASELINE"); v != "" {
		cfg.Baseline = v
	}
	if v := os.Getenv("LOCTAB_LOCALES"); v != "" {
		var locales []string
		for _, loc := range strings.Split(v, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				locales = append(locales, loc)
			}
		}
		cfg.Locales = locales
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.TablePath) == "" {
		return fmt.Errorf("config: table path cannot be empty")
	}
	if strings.TrimSpace(c.LocalesDir) == "" {
		c.LocalesDir = "."
	}
	if len(c.Locales) == 0 {
		return fmt.Errorf("config: locales list cannot be empty")
	}
	if c.Baseline == "" {
		c.Baseline = c.Locales[0]
	}
	for _, loc := range c.Locales {
		if loc == c.Baseline {
			return nil
		}
	}
	return fmt.Errorf("config: baseline %q is not in the locales list", c.Baseline)
}
