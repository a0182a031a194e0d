package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	LogLevel    string
	DataDir     string

	Storage    StorageConfig
	Network    NetworkConfig
	Classifier ClassifierConfig

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	MinIOHost      string
	MinIOPort      string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

// StorageConfig picks the device-local storage backend: sqlite, postgres or redis.
type StorageConfig struct {
	Driver string
	Path   string
}

type NetworkConfig struct {
	ProbeURL      string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	StartOffline  bool
}

type ClassifierConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("DataDir", "data")
	v.SetDefault("Storage.Driver", "sqlite")
	v.SetDefault("Storage.Path", "riceguard.db")
	v.SetDefault("Network.ProbeInterval", "15s")
	v.SetDefault("Network.ProbeTimeout", "5s")
	v.SetDefault("Classifier.MinDelay", "2s")
	v.SetDefault("Classifier.MaxDelay", "4s")
	v.SetDefault("RedisHost", "127.0.0.1")
	v.SetDefault("RedisPort", 6379)
	v.SetDefault("MinIOBucket", "report-photos")
}

func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Warn("no config file found, using defaults")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.Info("config parsed")

	return cfg, nil
}

// applyEnv lets deployment variables override the file for connection settings.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.ServicePort = p
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("PROBE_URL"); v != "" {
		cfg.Network.ProbeURL = v
	}

	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.RedisHost = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.RedisPort = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}

	if v := os.Getenv("MINIO_HOST"); v != "" {
		cfg.MinIOHost = v
	}
	if v := os.Getenv("MINIO_PORT"); v != "" {
		cfg.MinIOPort = v
	}
	if cfg.MinIOHost != "" && cfg.MinIOPort == "" {
		cfg.MinIOPort = "9000"
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIOAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinIOSecretKey = v
	}
}

// MinIOEnabled reports whether a photo archive is configured.
func (c *Config) MinIOEnabled() bool {
	return c.MinIOHost != ""
}
