package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel        string           `yaml:"log_level"`
	LogFormat       string           `yaml:"log_format"`
	CredentialsPath string           `yaml:"credentials_path"`
	Transcribe      TranscribeConfig `yaml:"transcribe"`
	Server          ServerConfig     `yaml:"server"`
	Batch           BatchConfig      `yaml:"batch"`
	Report          ReportConfig     `yaml:"report"`
}

type TranscribeConfig struct {
	Language    string        `yaml:"language"`
	SampleRate  int           `yaml:"sample_rate"`
	Encoding    string        `yaml:"encoding"`
	MediaFormat string        `yaml:"media_format"`
	AWS         AWSConfig     `yaml:"aws"`
	Whisper     WhisperConfig `yaml:"whisper"`
}

type AWSConfig struct {
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	PollIntervalMS int    `yaml:"poll_interval_ms"`
}

type WhisperConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

type ServerConfig struct {
	Bind        string `yaml:"bind"`
	Port        int    `yaml:"port"`
	ExplorerDir string `yaml:"explorer_dir"`
}

type BatchConfig struct {
	Workers      int    `yaml:"workers"`
	ReferenceExt string `yaml:"reference_ext"`
}

type ReportConfig struct {
	CSV   bool   `yaml:"csv"`
	PDF   bool   `yaml:"pdf"`
	Title string `yaml:"title"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		LogLevel:        "info",
		LogFormat:       "text",
		CredentialsPath: filepath.Join(home, ".tigerscore"),
		Transcribe: TranscribeConfig{
			Language:    "en-US",
			SampleRate:  16000,
			Encoding:    "LINEAR16",
			MediaFormat: "wav",
			AWS: AWSConfig{
				PollIntervalMS: 5000,
			},
			Whisper: WhisperConfig{
				Model: "whisper-1",
			},
		},
		Server: ServerConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Batch: BatchConfig{
			Workers:      4,
			ReferenceExt: ".txt",
		},
		Report: ReportConfig{
			CSV:   true,
			PDF:   false,
			Title: "Transcription Error Rates",
		},
	}
}

// Load reads path over the defaults, then applies TIGERSCORE_* environment
// overrides. An empty path means defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.LogLevel, "TIGERSCORE_LOG_LEVEL")
	overrideString(&cfg.LogFormat, "TIGERSCORE_LOG_FORMAT")
	overrideString(&cfg.CredentialsPath, "TIGERSCORE_CREDENTIALS_PATH")
	overrideString(&cfg.Transcribe.Language, "TIGERSCORE_TRANSCRIBE_LANGUAGE")
	overrideInt(&cfg.Transcribe.SampleRate, "TIGERSCORE_TRANSCRIBE_SAMPLE_RATE")
	overrideString(&cfg.Transcribe.Encoding, "TIGERSCORE_TRANSCRIBE_ENCODING")
	overrideString(&cfg.Transcribe.MediaFormat, "TIGERSCORE_TRANSCRIBE_MEDIA_FORMAT")
	overrideString(&cfg.Transcribe.AWS.Region, "TIGERSCORE_AWS_REGION")
	overrideString(&cfg.Transcribe.AWS.Bucket, "TIGERSCORE_AWS_BUCKET")
	overrideInt(&cfg.Transcribe.AWS.PollIntervalMS, "TIGERSCORE_AWS_POLL_INTERVAL_MS")
	overrideString(&cfg.Transcribe.Whisper.Endpoint, "TIGERSCORE_WHISPER_ENDPOINT")
	overrideString(&cfg.Transcribe.Whisper.Model, "TIGERSCORE_WHISPER_MODEL")
	overrideString(&cfg.Server.Bind, "TIGERSCORE_SERVER_BIND")
	overrideInt(&cfg.Server.Port, "TIGERSCORE_SERVER_PORT")
	overrideString(&cfg.Server.ExplorerDir, "TIGERSCORE_SERVER_EXPLORER_DIR")
	overrideInt(&cfg.Batch.Workers, "TIGERSCORE_BATCH_WORKERS")
	overrideString(&cfg.Batch.ReferenceExt, "TIGERSCORE_BATCH_REFERENCE_EXT")
	overrideBool(&cfg.Report.CSV, "TIGERSCORE_REPORT_CSV")
	overrideBool(&cfg.Report.PDF, "TIGERSCORE_REPORT_PDF")
	overrideString(&cfg.Report.Title, "TIGERSCORE_REPORT_TITLE")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log_level must be one of debug|info|warn|error")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return errors.New("log_format must be one of text|json")
	}
	if cfg.Transcribe.Language == "" {
		return errors.New("transcribe.language must not be empty")
	}
	if cfg.Transcribe.SampleRate <= 0 {
		return errors.New("transcribe.sample_rate must be positive")
	}
	if cfg.Transcribe.AWS.PollIntervalMS <= 0 {
		return errors.New("transcribe.aws.poll_interval_ms must be positive")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be between 1 and 65535")
	}
	if cfg.Batch.Workers <= 0 {
		return errors.New("batch.workers must be >= 1")
	}
	if !strings.HasPrefix(cfg.Batch.ReferenceExt, ".") {
		return errors.New("batch.reference_ext must start with a dot")
	}
	return nil
}
