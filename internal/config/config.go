package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type SessionConf struct {
	Secret     string `mapstructure:"secret"`
	TTLHours   int    `mapstructure:"ttl_hours"`
	CookieName string `mapstructure:"cookie_name"`
}

type BlobConf struct {
	// S3 backing is optional; with an empty bucket the store is memory-only
	// and images do not survive a restart.
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type UploadConf struct {
	MaxConcurrent int   `mapstructure:"max_concurrent"`
	MaxSizeBytes  int64 `mapstructure:"max_size_bytes"`
}

type StoryConf struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
	TimeoutS int    `mapstructure:"timeout_seconds"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConf struct {
	StoryPerMinute int `mapstructure:"story_per_minute"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Session   SessionConf   `mapstructure:"session"`
	Blob      BlobConf      `mapstructure:"blob"`
	Upload    UploadConf    `mapstructure:"upload"`
	Story     StoryConf     `mapstructure:"story"`
	Redis     RedisConf     `mapstructure:"redis"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`
	Kafka     KafkaConf     `mapstructure:"kafka"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	StoryTimeout    time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	// env-only overrides for secrets
	_ = v.BindEnv("session.secret", "SESSION_SECRET")
	_ = v.BindEnv("story.api_key", "STORY_API_KEY")
	_ = v.BindEnv("mongodb.uri", "MONGODB_URI")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "photovault"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24 * 7
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "pv_session"
	}
	if cfg.Upload.MaxConcurrent == 0 {
		cfg.Upload.MaxConcurrent = 3
	}
	if cfg.Upload.MaxSizeBytes == 0 {
		cfg.Upload.MaxSizeBytes = 50 * 1024 * 1024
	}
	if cfg.Story.BaseURL == "" {
		cfg.Story.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Story.Model == "" {
		cfg.Story.Model = "gpt-4o-mini"
	}
	if cfg.Story.TimeoutS == 0 {
		cfg.Story.TimeoutS = 30
	}
	if cfg.RateLimit.StoryPerMinute == 0 {
		cfg.RateLimit.StoryPerMinute = 10
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "photovault.events"
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.SessionTTL = time.Duration(cfg.Session.TTLHours) * time.Hour
	cfg.StoryTimeout = time.Duration(cfg.Story.TimeoutS) * time.Second
}
