package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/nikogura/storydocs/pkg/docs"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Output formats accepted by the compose command.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatTerminal = "terminal"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// Config represents the application configuration.
type Config struct {
	LibraryName     string         `json:"library_name" validate:"required"`
	Version         string         `json:"version,omitempty"`
	PackageJSON     string         `json:"package_json,omitempty"`
	RepositoryURL   string         `json:"repository_url" validate:"required,url"`
	FeedbackLinks   []FeedbackLink `json:"feedback_links,omitempty" validate:"dive"`
	CatalogLocation string         `json:"catalog_location,omitempty"`
	Pandoc          PandocConfig   `json:"pandoc"`
	Defaults        DefaultConfig  `json:"defaults"`
}

// FeedbackLink is a link in the docs page support footer.
type FeedbackLink struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required"`
}

// PandocConfig holds pandoc-related configuration.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=markdown json terminal html pdf"`
}

// Default returns the configuration used when no config file exists.
func Default() (cfg Config) {
	cfg = Config{
		LibraryName:   docs.DefaultLibraryName,
		RepositoryURL: docs.DefaultRepositoryURL,
		FeedbackLinks: []FeedbackLink{
			{Label: "Test", URL: "#"},
		},
		Defaults: DefaultConfig{
			OutputDir: "./docs",
			Format:    FormatMarkdown,
		},
	}
	return cfg
}

// DefaultPath returns $HOME/.storydocs/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".storydocs", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'storydocs init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	err = finish(&cfg)
	return cfg, err
}

// LoadOrDefault loads configPath, or the default location when configPath is
// empty. A missing default file yields Default() instead of an error.
func LoadOrDefault(configPath string) (cfg Config, err error) {
	if configPath != "" {
		cfg, err = Load(configPath)
		return cfg, err
	}

	var path string
	path, err = DefaultPath()
	if err != nil {
		return cfg, err
	}

	_, statErr := os.Stat(path)
	if os.IsNotExist(statErr) {
		cfg = Default()
		err = finish(&cfg)
		return cfg, err
	}

	cfg, err = Load(path)
	return cfg, err
}

// overrides are the environment variables that take precedence over the file.
type overrides struct {
	LibraryName     string `env:"STORYDOCS_LIBRARY_NAME"`
	Version         string `env:"STORYDOCS_VERSION"`
	PackageJSON     string `env:"STORYDOCS_PACKAGE_JSON"`
	RepositoryURL   string `env:"STORYDOCS_REPOSITORY_URL"`
	CatalogLocation string `env:"STORYDOCS_CATALOG"`
	PandocTemplate  string `env:"STORYDOCS_PANDOC_TEMPLATE"`
	OutputDir       string `env:"STORYDOCS_OUTPUT_DIR"`
	Format          string `env:"STORYDOCS_FORMAT"`
}

func applyEnv(cfg *Config) (err error) {
	var o overrides
	err = env.Parse(&o)
	if err != nil {
		err = errors.Wrap(err, "failed to parse environment overrides")
		return err
	}

	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&cfg.LibraryName, o.LibraryName)
	set(&cfg.Version, o.Version)
	set(&cfg.PackageJSON, o.PackageJSON)
	set(&cfg.RepositoryURL, o.RepositoryURL)
	set(&cfg.CatalogLocation, o.CatalogLocation)
	set(&cfg.Pandoc.TemplatePath, o.PandocTemplate)
	set(&cfg.Defaults.OutputDir, o.OutputDir)
	set(&cfg.Defaults.Format, o.Format)

	return err
}

// finish applies environment overrides and validates.
func finish(cfg *Config) (err error) {
	err = applyEnv(cfg)
	if err != nil {
		return err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return err
	}

	return err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	// Set defaults for optional fields
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./docs"
	}
	if c.Defaults.Format == "" {
		c.Defaults.Format = FormatMarkdown
	}

	err = validator.New().Struct(c)
	if err != nil {
		err = errors.Wrap(err, "invalid configuration")
		return err
	}

	if c.PackageJSON != "" {
		_, err = os.Stat(c.PackageJSON)
		if os.IsNotExist(err) {
			err = errors.Errorf("package.json not found: %s", c.PackageJSON)
			return err
		}
		err = nil
	}

	return err
}

// ResolveVersion returns the configured version, falling back to the
// "version" field of package_json.
func (c *Config) ResolveVersion() (version string, err error) {
	if c.Version != "" {
		version = c.Version
		return version, err
	}

	if c.PackageJSON == "" {
		return version, err
	}

	var data []byte
	data, err = os.ReadFile(c.PackageJSON)
	if err != nil {
		err = errors.Wrapf(err, "failed to read package.json: %s", c.PackageJSON)
		return version, err
	}

	if !gjson.ValidBytes(data) {
		err = errors.Errorf("invalid package.json: %s", c.PackageJSON)
		return version, err
	}

	version = gjson.GetBytes(data, "version").String()
	return version, err
}

// ComposerSettings maps the configuration onto docs page settings.
func (c *Config) ComposerSettings() (settings docs.Settings, err error) {
	var version string
	version, err = c.ResolveVersion()
	if err != nil {
		return settings, err
	}

	links := make([]docs.Link, 0, len(c.FeedbackLinks))
	for _, l := range c.FeedbackLinks {
		links = append(links, docs.Link{Label: l.Label, URL: l.URL})
	}

	settings = docs.Settings{
		LibraryName:   c.LibraryName,
		Version:       version,
		RepositoryURL: c.RepositoryURL,
		FeedbackLinks: links,
	}

	return settings, err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Default()
	defaultConfig.Version = "0.1.0"
	defaultConfig.CatalogLocation = "./stories"

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
