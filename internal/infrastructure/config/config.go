package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultModelName = "gpt-4-vision-preview"

type Config struct {
	// Server
	Port            string        `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// OpenAI
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	ModelName     string `yaml:"model_name"`

	// Twilio
	TwilioAccountSID string `yaml:"twilio_account_sid"`
	TwilioAuthToken  string `yaml:"twilio_auth_token"`
	TwilioBaseURL    string `yaml:"twilio_base_url"`

	// Verdict sinks, both optional
	DatabasePath          string `yaml:"database_path"`
	PubSubProject         string `yaml:"pubsub_project"`
	PubSubTopic           string `yaml:"pubsub_topic"`
	PubSubCredentialsFile string `yaml:"pubsub_credentials_file"`
}

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML file at path (skipped when path is empty), and the environment.
// A .env file is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	overrideFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:            "8080",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		ModelName:       DefaultModelName,
		TwilioBaseURL:   "https://api.twilio.com",
	}
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

func overrideFromEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.ModelName = getEnv("MODEL_NAME", cfg.ModelName)

	cfg.TwilioAccountSID = getEnv("TWILIO_ACCOUNT_SID", cfg.TwilioAccountSID)
	cfg.TwilioAuthToken = getEnv("TWILIO_AUTH_TOKEN", cfg.TwilioAuthToken)
	cfg.TwilioBaseURL = getEnv("TWILIO_BASE_URL", cfg.TwilioBaseURL)

	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.PubSubProject = getEnv("PUBSUB_PROJECT", cfg.PubSubProject)
	cfg.PubSubTopic = getEnv("PUBSUB_TOPIC", cfg.PubSubTopic)
	cfg.PubSubCredentialsFile = getEnv("PUBSUB_CREDENTIALS_FILE", cfg.PubSubCredentialsFile)
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.ModelName == "" {
		return errors.New("MODEL_NAME must not be empty")
	}
	if (c.TwilioAccountSID == "") != (c.TwilioAuthToken == "") {
		return errors.New("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set together")
	}
	if (c.PubSubProject == "") != (c.PubSubTopic == "") {
		return errors.New("PUBSUB_PROJECT and PUBSUB_TOPIC must be set together")
	}
	return nil
}

// HasTwilio reports whether outbound replies can be pushed through Twilio.
func (c *Config) HasTwilio() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

func (c *Config) HasPubSub() bool {
	return c.PubSubProject != "" && c.PubSubTopic != ""
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
