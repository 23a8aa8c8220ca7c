package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Server Server `yaml:"server"`
	API    API    `yaml:"api"`
	Minio  Minio  `yaml:"minio"`
	Kafka  Kafka  `yaml:"kafka"`
	Worker Worker `yaml:"worker"`
	Editor Editor `yaml:"editor"`
	Retry  Retry  `yaml:"retry"`
}

type Server struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadSize   int64         `yaml:"max_upload_size" env:"SERVER_MAX_UPLOAD_SIZE" env-default:"33554432"`
}

// API points at the remote creative API.
type API struct {
	BaseURL      string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8000"`
	Timeout      time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
	ServiceToken string        `yaml:"service_token" env:"API_SERVICE_TOKEN"`
	PollInterval time.Duration `yaml:"poll_interval" env:"API_POLL_INTERVAL" env-default:"2s"`
	PollBackoff  time.Duration `yaml:"poll_backoff" env:"API_POLL_BACKOFF" env-default:"5s"`
	RateLimit    float64       `yaml:"rate_limit" env:"API_RATE_LIMIT" env-default:"20"`
	RateBurst    int           `yaml:"rate_burst" env:"API_RATE_BURST" env-default:"10"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"creative-editor"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

type Kafka struct {
	Brokers     []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	EventsTopic string   `yaml:"events_topic" env:"KAFKA_EVENTS_TOPIC" env-default:"editor.edits-applied"`
	GroupID     string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"preview-worker"`
}

type Worker struct {
	Concurrency   int `yaml:"concurrency" env:"WORKER_CONCURRENCY" env-default:"4"`
	ThumbnailSize int `yaml:"thumbnail_size" env:"WORKER_THUMBNAIL_SIZE" env-default:"200"`
	JPEGQuality   int `yaml:"jpeg_quality" env:"WORKER_JPEG_QUALITY" env-default:"85"`
}

type Editor struct {
	RefreshAttempts int           `yaml:"refresh_attempts" env:"EDITOR_REFRESH_ATTEMPTS" env-default:"3"`
	RefreshDelay    time.Duration `yaml:"refresh_delay" env:"EDITOR_REFRESH_DELAY" env-default:"1s"`
	RefreshBackoff  float64       `yaml:"refresh_backoff" env:"EDITOR_REFRESH_BACKOFF" env-default:"2"`
	ImageCacheSize  int           `yaml:"image_cache_size" env:"EDITOR_IMAGE_CACHE_SIZE" env-default:"32"`
}

type Retry struct {
	Attempts int           `yaml:"attempts" env:"RETRY_ATTEMPTS" env-default:"3"`
	Delay    time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"1s"`
	Backoff  float64       `yaml:"backoff" env:"RETRY_BACKOFF" env-default:"2"`
}

// MustLoad reads the YAML file named by CONFIG_PATH (config/config.yaml by
// default) and applies environment overrides. Without a file only the
// environment and defaults are used.
func MustLoad() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be positive")
	}
	if c.Editor.RefreshAttempts <= 0 {
		return errors.New("editor.refresh_attempts must be positive")
	}
	return nil
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retry.Attempts,
		Delay:    c.Retry.Delay,
		Backoff:  c.Retry.Backoff,
	}
}

// RefreshRetryStrategy bounds the asset re-fetch after an applied edit.
func (c *Config) RefreshRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Editor.RefreshAttempts,
		Delay:    c.Editor.RefreshDelay,
		Backoff:  c.Editor.RefreshBackoff,
	}
}
