package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cellgrip/internal/domain"
	"cellgrip/internal/eventbus"
	"cellgrip/internal/format"
)

// FileName is the config file name inside the cellgrip config directory
const FileName = "config.toml"

// Modifier names for the additive selection key
const (
	ModifierCtrl  = "ctrl"
	ModifierAlt   = "alt"
	ModifierShift = "shift"
)

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	Locale    string            `toml:"locale"` // "en" or "es"
	Clipboard ClipboardSettings `toml:"clipboard"`
	Selection SelectionSettings `toml:"selection"`
	UI        UISettings        `toml:"ui"`
	Columns   []ColumnOverride  `toml:"columns"`
}

// ClipboardSettings controls how copies reach the clipboard
type ClipboardSettings struct {
	Backend   string `toml:"backend"`    // auto, system, osc52 or memory
	ConfirmMS int    `toml:"confirm_ms"` // how long "Copied" stays visible
}

// SelectionSettings controls pointer selection
type SelectionSettings struct {
	Modifier    string `toml:"modifier"` // key that makes a press additive
	LiveUpdates bool   `toml:"live_updates"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MaxColumnWidth int `toml:"max_column_width"`
}

// ColumnOverride replaces the title or type of a column loaded from a file
type ColumnOverride struct {
	Field string `toml:"field"`
	Title string `toml:"title,omitempty"`
	Type  string `toml:"type,omitempty"`
}

// ErrNotFound indicates the config file does not exist
var ErrNotFound = errors.New("config file not found")

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.Publisher
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.Publisher) ConfigService {
	return &configService{bus: bus, filePath: DefaultPath()}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "cellgrip", FileName)
}

// Load loads the configuration from the default file, falling back to
// defaults when it does not exist yet
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Locale: cfg.Locale})
	}
	return cfg, nil
}

// Save saves the configuration to the default file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Unset fields keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Locale:  "en",
		Clipboard: ClipboardSettings{
			Backend:   "auto",
			ConfirmMS: 2000,
		},
		Selection: SelectionSettings{
			Modifier: ModifierCtrl,
		},
		UI: UISettings{
			MaxColumnWidth: 24,
		},
	}
}

// Validate rejects values the rest of the program cannot honor
func (c *Config) Validate() error {
	var errs []error
	switch c.Locale {
	case "en", "es":
	default:
		errs = append(errs, fmt.Errorf("unsupported locale %q", c.Locale))
	}
	switch c.Clipboard.Backend {
	case "auto", "system", "osc52", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown clipboard backend %q", c.Clipboard.Backend))
	}
	if c.Clipboard.ConfirmMS < 0 {
		errs = append(errs, errors.New("confirm_ms must not be negative"))
	}
	switch c.Selection.Modifier {
	case ModifierCtrl, ModifierAlt, ModifierShift:
	default:
		errs = append(errs, fmt.Errorf("unknown selection modifier %q", c.Selection.Modifier))
	}
	for _, col := range c.Columns {
		if col.Field == "" {
			errs = append(errs, errors.New("column override without field"))
		}
		if col.Type != "" && format.ForType(col.Type) == nil && !strings.EqualFold(col.Type, format.TypeText) {
			errs = append(errs, fmt.Errorf("column %s: unknown type %q", col.Field, col.Type))
		}
	}
	return errors.Join(errs...)
}

// ApplyColumns returns columns with the configured overrides applied.
// An override for a field the table does not have is ignored.
func (c *Config) ApplyColumns(columns []domain.Column) []domain.Column {
	out := make([]domain.Column, len(columns))
	copy(out, columns)
	for _, o := range c.Columns {
		i := domain.ColumnIndex(out, o.Field)
		if i < 0 {
			continue
		}
		if o.Title != "" {
			out[i].Title = o.Title
		}
		if o.Type != "" {
			out[i].Type = o.Type
			out[i].Formatter = format.ForType(o.Type)
		}
	}
	return out
}
