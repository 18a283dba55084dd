// Package config provides the typed configuration for the digest pipeline,
// merged from built-in defaults, an optional digest.yaml project file, and
// environment variables. Credentials are read once at process start; stage
// constructors receive the resulting Config and never consult the
// environment themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Default values for pipeline configuration. Load() references them and no
// other code should duplicate them.
const (
	DefaultAPIBaseURL = "https://api.openai.com/v1"

	DefaultTranscriptionModel = "whisper-1"
	DefaultExtractionModel    = "gpt-4"
	DefaultCompositionModel   = "gpt-4"

	DefaultDownloadDir = "downloads"
	DefaultOutputDir   = "."

	DefaultRequestTimeoutSec  = 120
	DefaultDownloadTimeoutSec = 300

	DefaultTranscriptCharBudget = 12000
	DefaultPerMinuteRateUSD     = 0.006
	DefaultSectionWorkers       = 5

	DefaultPort = 8000
)

// ModelsConfig selects the endpoint models per stage.
type ModelsConfig struct {
	Transcription string `yaml:"transcription,omitempty"`
	Extraction    string `yaml:"extraction,omitempty"`
	Composition   string `yaml:"composition,omitempty"`
}

// PathsConfig holds local directories for media and artifacts.
type PathsConfig struct {
	Downloads string `yaml:"downloads,omitempty"`
	Output    string `yaml:"output,omitempty"`
}

// LimitsConfig holds request budgets and concurrency bounds.
type LimitsConfig struct {
	TranscriptChars   int `yaml:"transcript_chars,omitempty"`
	SectionWorkers    int `yaml:"section_workers,omitempty"`
	RequestTimeoutSec int `yaml:"request_timeout,omitempty"`

	DownloadTimeoutSec int `yaml:"download_timeout,omitempty"`
}

// ServerConfig holds REST API settings.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

// fileConfig is the shape of the optional digest.yaml project file.
type fileConfig struct {
	Models ModelsConfig `yaml:"models,omitempty"`
	Paths  PathsConfig  `yaml:"paths,omitempty"`
	Limits LimitsConfig `yaml:"limits,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
}

// envConfig is the set of environment overrides, the only place credentials
// come from.
type envConfig struct {
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	DownloadDir     string `env:"DIGEST_DOWNLOAD_DIR"`
	OutputDir       string `env:"DIGEST_OUTPUT_DIR"`
	Port            int    `env:"DIGEST_PORT"`
	APIBaseURL      string `env:"DIGEST_API_BASE_URL"`
}

// Config is the fully-merged runtime configuration.
type Config struct {
	// APIKey authenticates both the speech-to-text and chat-completion
	// calls. Required.
	APIKey string
	// EnhancementAPIKey is the optional credential for the transcript
	// enhancement stage. The stage is currently a pass-through, so the key
	// is carried but unused.
	EnhancementAPIKey string

	APIBaseURL string

	Models ModelsConfig
	Paths  PathsConfig
	Limits LimitsConfig
	Server ServerConfig
}

// RequestTimeout returns the per-call timeout for speech and generation
// endpoints.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Limits.RequestTimeoutSec) * time.Second
}

// DownloadTimeout returns the timeout for a single media download.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Limits.DownloadTimeoutSec) * time.Second
}

// ErrMissingAPIKey is returned when no endpoint credential is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Load builds the runtime configuration: defaults, overlaid with the
// project file at path (ignored if path is empty or the file is absent),
// overlaid with environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL: DefaultAPIBaseURL,
		Models: ModelsConfig{
			Transcription: DefaultTranscriptionModel,
			Extraction:    DefaultExtractionModel,
			Composition:   DefaultCompositionModel,
		},
		Paths: PathsConfig{
			Downloads: DefaultDownloadDir,
			Output:    DefaultOutputDir,
		},
		Limits: LimitsConfig{
			TranscriptChars:    DefaultTranscriptCharBudget,
			SectionWorkers:     DefaultSectionWorkers,
			RequestTimeoutSec:  DefaultRequestTimeoutSec,
			DownloadTimeoutSec: DefaultDownloadTimeoutSec,
		},
		Server: ServerConfig{Port: DefaultPort},
	}

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	applyEnv(cfg, env)

	return cfg, nil
}

// MustLoad is Load for main(): it validates the credential requirement and
// exits with a descriptive error on failure.
func MustLoad(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks startup-time requirements. A missing endpoint credential
// is a startup failure, not a per-call failure.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if fc.Models.Transcription != "" {
		cfg.Models.Transcription = fc.Models.Transcription
	}
	if fc.Models.Extraction != "" {
		cfg.Models.Extraction = fc.Models.Extraction
	}
	if fc.Models.Composition != "" {
		cfg.Models.Composition = fc.Models.Composition
	}
	if fc.Paths.Downloads != "" {
		cfg.Paths.Downloads = fc.Paths.Downloads
	}
	if fc.Paths.Output != "" {
		cfg.Paths.Output = fc.Paths.Output
	}
	if fc.Limits.TranscriptChars > 0 {
		cfg.Limits.TranscriptChars = fc.Limits.TranscriptChars
	}
	if fc.Limits.SectionWorkers > 0 {
		cfg.Limits.SectionWorkers = fc.Limits.SectionWorkers
	}
	if fc.Limits.RequestTimeoutSec > 0 {
		cfg.Limits.RequestTimeoutSec = fc.Limits.RequestTimeoutSec
	}
	if fc.Limits.DownloadTimeoutSec > 0 {
		cfg.Limits.DownloadTimeoutSec = fc.Limits.DownloadTimeoutSec
	}
	if fc.Server.Port > 0 {
		cfg.Server.Port = fc.Server.Port
	}
	return nil
}

func applyEnv(cfg *Config, env envConfig) {
	cfg.APIKey = env.OpenAIAPIKey
	cfg.EnhancementAPIKey = env.AnthropicAPIKey
	if env.DownloadDir != "" {
		cfg.Paths.Downloads = env.DownloadDir
	}
	if env.OutputDir != "" {
		cfg.Paths.Output = env.OutputDir
	}
	if env.Port > 0 {
		cfg.Server.Port = env.Port
	}
	if env.APIBaseURL != "" {
		cfg.APIBaseURL = env.APIBaseURL
	}
}
