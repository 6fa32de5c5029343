package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Base URLs the client ships with. Which one is used is decided by the
// environment, not switchable at runtime.
const (
	ProductionBaseURL = "https://billing.aptbill.app/api"
	LocalBaseURL      = "http://127.0.0.1:8088/api"
)

type APIConfig struct {
	BaseURL        string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

type SessionConfig struct {
	Path string
}

type StubConfig struct {
	Host       string
	Port       int
	JWTSecret  string
	JWTTTL     time.Duration
	UploadsDir string
	SweepSpec  string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	API         APIConfig
	Session     SessionConfig
	Stub        StubConfig
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("aptbill")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".aptbill"))
	}

	v.SetEnvPrefix("APTBILL")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		if cfg.Environment == "production" {
			cfg.API.BaseURL = ProductionBaseURL
		} else {
			cfg.API.BaseURL = LocalBaseURL
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "local")
	v.SetDefault("loglevel", "")

	v.SetDefault("api.connecttimeout", "30s")
	v.SetDefault("api.requesttimeout", "30s")

	sessionPath := "session.json"
	if home, err := os.UserHomeDir(); err == nil {
		sessionPath = filepath.Join(home, ".aptbill", "session.json")
	}
	v.SetDefault("session.path", sessionPath)

	v.SetDefault("stub.host", "127.0.0.1")
	v.SetDefault("stub.port", 8088)
	v.SetDefault("stub.jwtsecret", "dev-only-secret")
	v.SetDefault("stub.jwtttl", "720h")
	v.SetDefault("stub.uploadsdir", "uploads")
	v.SetDefault("stub.sweepspec", "0 0 * * * *") // hourly overdue sweep
}
