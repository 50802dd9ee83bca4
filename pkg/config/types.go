package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Extraction  ExtractionConfig  `mapstructure:"extraction"`
	Recognition RecognitionConfig `mapstructure:"recognition"`
	Translation TranslationConfig `mapstructure:"translation"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline"`
	History     HistoryConfig     `mapstructure:"history"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int             `mapstructure:"max_header_bytes"`
	MaxRequestBytes int64           `mapstructure:"max_request_bytes"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig contains per-client API rate limiting settings.
// Control covers the pipeline lifecycle endpoints, Query the history
// reads.
type RateLimitConfig struct {
	ControlRPS   int           `mapstructure:"control_rps"`
	ControlBurst int           `mapstructure:"control_burst"`
	QueryRPS     int           `mapstructure:"query_rps"`
	QueryBurst   int           `mapstructure:"query_burst"`
	ClientTTL    time.Duration `mapstructure:"client_ttl"`
}

// DatabaseConfig contains transcription history database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// ExtractionConfig contains live audio extraction settings
type ExtractionConfig struct {
	YTDLPPath   string        `mapstructure:"ytdlp_path"`
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	SampleRate  int           `mapstructure:"sample_rate"`
	ResolveTime time.Duration `mapstructure:"resolve_timeout"`
}

// RecognitionConfig contains speech recognition settings
type RecognitionConfig struct {
	Engine      string        `mapstructure:"engine"`
	WhisperPath string        `mapstructure:"whisper_path"`
	ModelPath   string        `mapstructure:"model_path"`
	Threads     int           `mapstructure:"threads"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// TranslationConfig contains text translation settings
type TranslationConfig struct {
	Engine          string        `mapstructure:"engine"`
	Model           string        `mapstructure:"model"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	RequestInterval time.Duration `mapstructure:"request_interval"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// OpenAIConfig contains OpenAI API credentials
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// PipelineConfig contains streaming pipeline settings
type PipelineConfig struct {
	SourceLanguage  string        `mapstructure:"source_language"`
	TargetLanguage  string        `mapstructure:"target_language"`
	SegmentDuration int           `mapstructure:"segment_duration"`
	Workers         int           `mapstructure:"workers"`
	QueueSize       int           `mapstructure:"queue_size"`
	CacheSize       int           `mapstructure:"cache_size"`
	StopTimeout     time.Duration `mapstructure:"stop_timeout"`
	VADThreshold    float64       `mapstructure:"vad_threshold"`
}

// HistoryConfig contains transcription history settings
type HistoryConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxResults int  `mapstructure:"max_results"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
