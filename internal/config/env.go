package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ytget/ytdl-desktop/internal/download"
)

// EnvPrefix namespaces every environment variable, e.g. YTDL_LOG_LEVEL
const EnvPrefix = "YTDL"

// Environment keys
const (
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyHTTPTimeout = "http.timeout"
	KeyChunkSize   = "download.chunk_size"
)

// Environment defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = LogFormatText
	DefaultHTTPTimeout = 30 * time.Second
	DefaultChunkSize   = download.DefaultChunkSize
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Env holds the settings that come from the process environment
type Env struct {
	LogLevel    log.Level
	LogFormat   string
	HTTPTimeout time.Duration
	ChunkSize   int
}

// LoadEnv reads YTDL_* variables. Unset variables keep their defaults;
// malformed ones are an error.
func LoadEnv() (*Env, error) {
	return loadEnv(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyChunkSize, DefaultChunkSize)
	return v
}

func loadEnv(v *viper.Viper) (*Env, error) {
	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s_LOG_LEVEL: %w", EnvPrefix, err)
	}

	format := strings.ToLower(v.GetString(KeyLogFormat))
	if format != LogFormatText && format != LogFormatJSON {
		return nil, fmt.Errorf("invalid %s_LOG_FORMAT %q: want %s or %s", EnvPrefix, format, LogFormatText, LogFormatJSON)
	}

	timeout := v.GetDuration(KeyHTTPTimeout)
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid %s_HTTP_TIMEOUT %q", EnvPrefix, v.GetString(KeyHTTPTimeout))
	}

	chunk := v.GetInt(KeyChunkSize)
	if chunk <= 0 || chunk > download.MaxChunkSize {
		return nil, fmt.Errorf("invalid %s_DOWNLOAD_CHUNK_SIZE %q: want 1..%d", EnvPrefix, v.GetString(KeyChunkSize), download.MaxChunkSize)
	}

	return &Env{
		LogLevel:    level,
		LogFormat:   format,
		HTTPTimeout: timeout,
		ChunkSize:   chunk,
	}, nil
}

// ConfigureLogging applies level and format to the standard logrus logger
func (e *Env) ConfigureLogging(out io.Writer) {
	log.SetOutput(out)
	log.SetLevel(e.LogLevel)
	if e.LogFormat == LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
