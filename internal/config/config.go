package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/qat-editor/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Grammar   GrammarConfig   `toml:"grammar"`
	Highlight HighlightConfig `toml:"highlight"`
	Editor    EditorConfig    `toml:"editor"`
}

// GrammarConfig locates the compiled qat grammar.
type GrammarConfig struct {
	Library string `toml:"library"` // path of the shared library
	Symbol  string `toml:"symbol"`  // exported language function
}

// HighlightConfig tunes highlight passes.
type HighlightConfig struct {
	// Strict aborts a pass on the first node the grammar should never have
	// produced. Meant for grammar development.
	Strict bool `toml:"strict"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	SystemClipboard bool `toml:"system_clipboard"`
	// Watch reloads the document when the file changes on disk and has no
	// unsaved edits.
	Watch bool `toml:"watch"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: DefaultLogFileName,
		},
		Grammar: GrammarConfig{
			Library: DefaultGrammarLibrary,
			Symbol:  DefaultGrammarSymbol,
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			SystemClipboard: SystemClipboard,
		},
	}
}

// DefaultPath returns the config file looked up when none is given, or ""
// when the user config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file leaves cfg as is.
// It returns the keys the file set that Config does not know.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	_, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Grammar.Symbol == "" {
		c.Grammar.Symbol = defaults.Grammar.Symbol
	}
}

// Load builds a configuration from defaults, the config file and flag
// overrides, in that order. An empty configFilePath means DefaultPath.
// The logger is not initialised yet, so unknown keys are returned rather
// than logged.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var unknown []string
	if effectivePath != "" {
		var err error
		unknown, err = loadFromFile(effectivePath, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, unknown, nil
}

// LoadConfig runs Load once and keeps the result for Get. It should be
// called only once, from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		var unknown []string
		loadedConfig, unknown, loadErr = Load(configFilePath, flags)
		if loadErr != nil {
			loadedConfig = NewDefaultConfig()
			return
		}
		if len(unknown) > 0 {
			loadErr = fmt.Errorf("%w: %v", ErrUnknownKeys, unknown)
		}
	})
	return loadedConfig, loadErr
}

// ErrUnknownKeys reports config file keys that were ignored. The returned
// configuration is still usable.
var ErrUnknownKeys = errors.New("config: unrecognized keys")

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
