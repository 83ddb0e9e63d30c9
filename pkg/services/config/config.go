package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "BUCKET_DOCTOR"

var (
	validProviders   = []string{"auto", "bedrock", "openai", "gemini", "none"}
	validAlgorithms  = []string{"AES256", "aws:kms", "aws:kms:dsse"}
	configSearchDirs = []string{".", "$HOME", "$XDG_CONFIG_HOME/bucket-doctor"}
)

type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

type AIConfig struct {
	Provider     string `mapstructure:"provider"`
	Model        string `mapstructure:"model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
}

type ReportingConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type ScanConfig struct {
	CheckTimeout   time.Duration `mapstructure:"check_timeout"`
	SizeSampleKeys int           `mapstructure:"size_sample_keys"`
}

type RemediationConfig struct {
	EncryptionAlgorithm string `mapstructure:"encryption_algorithm"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Config struct {
	AWS         AWSConfig         `mapstructure:"aws"`
	AI          AIConfig          `mapstructure:"ai"`
	Reporting   ReportingConfig   `mapstructure:"reporting"`
	History     HistoryConfig     `mapstructure:"history"`
	Scan        ScanConfig        `mapstructure:"scan"`
	Remediation RemediationConfig `mapstructure:"remediation"`
	Server      ServerConfig      `mapstructure:"server"`
	Debug       bool              `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.profile", "")
	v.SetDefault("ai.provider", "auto")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.max_tokens", 4096)
	v.SetDefault("reporting.output_dir", "reports")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db_path", "bucket-doctor.db")
	v.SetDefault("scan.check_timeout", 30*time.Second)
	v.SetDefault("scan.size_sample_keys", 1000)
	v.SetDefault("remediation.encryption_algorithm", "AES256")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("debug", false)
}

// Load resolves defaults, then the config file, then the environment. An
// explicit path must exist; a missing bucket-doctor.yaml in the search
// directories is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known variables used by the tooling around the service.
	_ = v.BindEnv("ai.openai_api_key", EnvPrefix+"_AI_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("ai.gemini_api_key", EnvPrefix+"_AI_GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("aws.profile", EnvPrefix+"_AWS_PROFILE", "AWS_PROFILE")
	_ = v.BindEnv("server.host", EnvPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "SERVER_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("bucket-doctor")
		v.SetConfigType("yaml")
		for _, dir := range configSearchDirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(validProviders, c.AI.Provider) {
		return fmt.Errorf("invalid ai.provider %q: must be one of %s", c.AI.Provider, strings.Join(validProviders, ", "))
	}
	if !slices.Contains(validAlgorithms, c.Remediation.EncryptionAlgorithm) {
		return fmt.Errorf("invalid remediation.encryption_algorithm %q", c.Remediation.EncryptionAlgorithm)
	}
	if c.Scan.CheckTimeout <= 0 {
		return fmt.Errorf("scan.check_timeout must be positive")
	}
	if c.Scan.SizeSampleKeys <= 0 {
		return fmt.Errorf("scan.size_sample_keys must be positive")
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be positive")
	}
	return nil
}

func (c *Config) ServerAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
