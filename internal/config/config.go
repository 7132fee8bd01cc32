package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/idilsaglam/tasks/internal/ui"
)

type Config struct {
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

type UIConfig struct {
	Theme     string `toml:"theme"`
	CharLimit int    `toml:"char_limit"`
	AltScreen bool   `toml:"alt_screen"`
	Group     bool   `toml:"group"` // group printed lists by pending/done
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug | info | warn | error
	Format string `toml:"format"` // text | logfmt | json
	File   string `toml:"file"`   // empty means no file sink
}

func Default() Config {
	return Config{
		UI: UIConfig{
			Theme:     "classic",
			CharLimit: 200,
			AltScreen: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path over defaults. A missing or empty file
// yields the defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	theme := strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if theme != "" && !slices.Contains(ui.Names(), theme) {
		return fmt.Errorf("invalid ui.theme: %q", c.UI.Theme)
	}
	if c.UI.CharLimit <= 0 {
		return fmt.Errorf("ui.char_limit must be > 0, got %d", c.UI.CharLimit)
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "text", "logfmt", "json":
	default:
		return fmt.Errorf("invalid logging.format: %q", c.Logging.Format)
	}
	return nil
}
