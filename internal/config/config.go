package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docstring2md/internal/signature"
)

const (
	DefaultFile = "docstring2md.yaml"
	envPrefix   = "DOCSTRING2MD_"
)

type Config struct {
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`  // created next to the package root
	File string `yaml:"file"` // overwritten on every run
}

type RenderConfig struct {
	Title           string `yaml:"title"`
	TimestampFormat string `yaml:"timestamp_format"` // Go time layout
	WrapWidth       int    `yaml:"wrap_width"`
	StripPackages   bool   `yaml:"strip_packages"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Dir: "docs", File: "doc.md"},
		Render: RenderConfig{
			Title:           "API",
			TimestampFormat: "2006-01-02 15:04",
			WrapWidth:       signature.DefaultWidth,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads .env, then the YAML file at path, then environment
// overrides. An empty path means DOCSTRING2MD_CONFIG or DefaultFile; a
// missing file leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	// 2. Load YAML config
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// 3. Override with Environment Variables if present
	if dir := os.Getenv(envPrefix + "OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if name := os.Getenv(envPrefix + "OUTPUT_FILE"); name != "" {
		cfg.Output.File = name
	}
	if level := os.Getenv(envPrefix + "LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Output),
		validation.Field(&c.Render),
		validation.Field(&c.Log),
	)
}

func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Dir, validation.Required),
		validation.Field(&o.File, validation.Required, validation.By(func(value any) error {
			if strings.ContainsAny(value.(string), `/\`) {
				return validation.NewError("config.output.file_separator", "must be a file name, not a path")
			}
			return nil
		})),
	)
}

func (r RenderConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.TimestampFormat, validation.Required),
		validation.Field(&r.WrapWidth, validation.Required, validation.Min(1)),
	)
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In("text", "json")),
	)
}
