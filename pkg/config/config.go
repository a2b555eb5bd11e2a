package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/nikogura/career-roadmap/pkg/llm"
	"github.com/nikogura/career-roadmap/pkg/plantuml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultModel is the generation model used when none is configured.
	DefaultModel = llm.ClaudeModel
	// DefaultCompression is the diagram compression level name. Faster levels
	// store short sources uncompressed, which makes links longer than needed.
	DefaultCompression = "best"
	// DefaultOutputDir is where roadmaps land when nothing else is set.
	DefaultOutputDir = "./roadmaps"
	// DefaultLogLevel is the logrus level used when none is configured.
	DefaultLogLevel = "info"
)

// Config represents the application configuration.
type Config struct {
	AnthropicAPIKey string        `json:"anthropic_api_key"`
	Model           string        `json:"model,omitempty"`
	ProfileLocation string        `json:"profile_location"`
	LogLevel        string        `json:"log_level,omitempty"`
	Diagram         DiagramConfig `json:"diagram"`
	Pandoc          PandocConfig  `json:"pandoc"`
	Defaults        DefaultConfig `json:"defaults"`
}

// DiagramConfig holds the renderer endpoint and payload settings.
type DiagramConfig struct {
	BaseURL     string `json:"base_url"`
	Compression string `json:"compression,omitempty"`
	Alphabet    string `json:"alphabet,omitempty"`
}

// PandocConfig holds optional PDF rendering settings.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// Default returns a configuration with every default filled in.
func Default() (cfg Config) {
	cfg = Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns ~/.career-roadmap/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".career-roadmap", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment overrides.
func Load(configPath string) (cfg Config, err error) {
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
			err = errors.Errorf("config file not found: %s (run 'career-roadmap init' to create)", path)
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

	cfg.applyEnv()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// LoadOptional behaves like Load but falls back to defaults plus
// environment overrides when the config file does not exist.
func LoadOptional(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		cfg = Config{}
		cfg.applyEnv()
		err = cfg.Validate()
		return cfg, err
	}

	cfg, err = Load(path)
	return cfg, err
}

// applyEnv loads a .env file if present, then lets environment variables
// override file values.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		c.AnthropicAPIKey = apiKey
	}
	if model := os.Getenv("CAREER_ROADMAP_MODEL"); model != "" {
		c.Model = model
	}
	if baseURL := os.Getenv("PLANTUML_BASE_URL"); baseURL != "" {
		c.Diagram.BaseURL = baseURL
	}
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Diagram.BaseURL == "" {
		c.Diagram.BaseURL = plantuml.DefaultBaseURL
	}
	if c.Diagram.Compression == "" {
		c.Diagram.Compression = DefaultCompression
	}
	if c.Diagram.Alphabet == "" {
		c.Diagram.Alphabet = plantuml.DefaultAlphabetChars
	}
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = DefaultOutputDir
	}
}

// Validate fills defaults and checks the settings every command relies on.
// The API key is only required for generation; see RequireAPIKey.
func (c *Config) Validate() (err error) {
	c.applyDefaults()

	_, err = plantuml.ParseLevel(c.Diagram.Compression)
	if err != nil {
		err = errors.Wrap(err, "diagram.compression is invalid")
		return err
	}

	_, err = plantuml.NewAlphabet(c.Diagram.Alphabet)
	if err != nil {
		err = errors.Wrap(err, "diagram.alphabet is invalid")
		return err
	}

	_, err = logrus.ParseLevel(c.LogLevel)
	if err != nil {
		err = errors.Wrap(err, "log_level is invalid")
		return err
	}

	return err
}

// RequireAPIKey checks that a generation API key is available.
func (c *Config) RequireAPIKey() (err error) {
	if c.AnthropicAPIKey == "" {
		err = errors.New("anthropic_api_key is required (set in config or ANTHROPIC_API_KEY env var)")
		return err
	}
	return err
}

// LinkBuilder returns the diagram link builder described by the config.
func (c *Config) LinkBuilder() (builder plantuml.LinkBuilder, err error) {
	var level plantuml.Level
	level, err = plantuml.ParseLevel(c.Diagram.Compression)
	if err != nil {
		return builder, err
	}

	alphabetChars := c.Diagram.Alphabet
	if alphabetChars == "" {
		alphabetChars = plantuml.DefaultAlphabetChars
	}

	var alphabet plantuml.Alphabet
	alphabet, err = plantuml.NewAlphabet(alphabetChars)
	if err != nil {
		return builder, err
	}

	builder = plantuml.NewLinkBuilder(c.Diagram.BaseURL, alphabet, level)
	return builder, err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
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
	defaultConfig.AnthropicAPIKey = "sk-ant-api03-..."
	defaultConfig.ProfileLocation = filepath.Join(dir, "user_profile.json")

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
