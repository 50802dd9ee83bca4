package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Load .env if present, before viper reads the environment
		_ = godotenv.Load()

		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("LIVETRANS")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetInt("pipeline.segment_duration") <= 0 {
		return fmt.Errorf("invalid segment duration: %d", viper.GetInt("pipeline.segment_duration"))
	}

	engine := viper.GetString("recognition.engine")
	if engine != "whisper-local" && engine != "openai" {
		return fmt.Errorf("unknown recognition engine: %s", engine)
	}

	// OpenAI-backed providers need a key outside development
	if err := validateAPIKey(); err != nil {
		return err
	}

	// Auto-correct invalid worker count
	if viper.GetInt("pipeline.workers") <= 0 {
		viper.Set("pipeline.workers", 1)
	}

	// Auto-correct invalid queue size
	if viper.GetInt("pipeline.queue_size") <= 0 {
		viper.Set("pipeline.queue_size", 100)
	}

	// Auto-correct invalid cache size
	if viper.GetInt("pipeline.cache_size") <= 0 {
		viper.Set("pipeline.cache_size", 500)
	}

	return nil
}

// validateAPIKey checks the OpenAI key is not a placeholder when a
// remote engine is selected
func validateAPIKey() error {
	usesOpenAI := viper.GetString("recognition.engine") == "openai" ||
		viper.GetString("translation.engine") == "openai"
	if !usesOpenAI {
		return nil
	}

	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	key := viper.GetString("openai.api_key")
	for _, placeholder := range placeholders {
		if key == placeholder {
			if isProduction {
				return fmt.Errorf("invalid OpenAI API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: OpenAI API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Pipeline.SegmentDuration <= 0 {
		return fmt.Errorf("invalid segment duration: %d", c.Pipeline.SegmentDuration)
	}

	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = 1
	}

	if c.Pipeline.QueueSize <= 0 {
		c.Pipeline.QueueSize = 100
	}

	if c.Pipeline.CacheSize <= 0 {
		c.Pipeline.CacheSize = 500
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_request_bytes", 1048576)
	viper.SetDefault("server.rate_limit.control_rps", 2)
	viper.SetDefault("server.rate_limit.control_burst", 5)
	viper.SetDefault("server.rate_limit.query_rps", 10)
	viper.SetDefault("server.rate_limit.query_burst", 20)
	viper.SetDefault("server.rate_limit.client_ttl", 10*time.Minute)

	// Database defaults
	viper.SetDefault("database.path", "./data/transcriptions.db")
	viper.SetDefault("database.verbose", false)

	// Extraction defaults
	viper.SetDefault("extraction.ytdlp_path", "yt-dlp")
	viper.SetDefault("extraction.ffmpeg_path", "ffmpeg")
	viper.SetDefault("extraction.sample_rate", 16000)
	viper.SetDefault("extraction.resolve_timeout", 30*time.Second)

	// Recognition defaults
	viper.SetDefault("recognition.engine", "whisper-local")
	viper.SetDefault("recognition.whisper_path", "whisper-cli")
	viper.SetDefault("recognition.model_path", "./models/ggml-base.en.bin")
	viper.SetDefault("recognition.threads", 4)
	viper.SetDefault("recognition.timeout", 1*time.Minute)

	// Translation defaults
	viper.SetDefault("translation.engine", "openai")
	viper.SetDefault("translation.model", "gpt-3.5-turbo")
	viper.SetDefault("translation.max_tokens", 150)
	viper.SetDefault("translation.request_interval", 100*time.Millisecond)
	viper.SetDefault("translation.timeout", 30*time.Second)

	// Pipeline defaults
	viper.SetDefault("pipeline.source_language", "en")
	viper.SetDefault("pipeline.target_language", "ja")
	viper.SetDefault("pipeline.segment_duration", 10)
	viper.SetDefault("pipeline.workers", 1)
	viper.SetDefault("pipeline.queue_size", 100)
	viper.SetDefault("pipeline.cache_size", 500)
	viper.SetDefault("pipeline.stop_timeout", 5*time.Second)
	viper.SetDefault("pipeline.vad_threshold", 1000.0)

	// History defaults
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.max_results", 1000)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
