package config

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type ServerConfig struct {
	Port               string  `mapstructure:"port"`
	UseHsts            bool    `mapstructure:"useHsts"`
	UseSecurityHeaders bool    `mapstructure:"useSecurityHeaders"`
	RateLimit          float64 `mapstructure:"rateLimit"`
	RateBurst          int     `mapstructure:"rateBurst"`
}

type FilesConfig struct {
	Path      string `mapstructure:"path"`
	NoClobber bool   `mapstructure:"noClobber"`
	LockNames bool   `mapstructure:"lockNames"`
}

type UploadConfig struct {
	MaxBytes  int64 `mapstructure:"maxBytes"`
	MaxMemory int64 `mapstructure:"maxMemory"`
	Workers   int   `mapstructure:"workers"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ActivityConfig struct {
	Recent    int           `mapstructure:"recent"`
	Retention time.Duration `mapstructure:"retention"`
}

type CookieConfig struct {
	Secure bool `mapstructure:"secure"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server   *ServerConfig   `mapstructure:"server"`
	Files    *FilesConfig    `mapstructure:"files"`
	Upload   *UploadConfig   `mapstructure:"upload"`
	Database *DatabaseConfig `mapstructure:"database"`
	Activity *ActivityConfig `mapstructure:"activity"`
	Cookie   *CookieConfig   `mapstructure:"cookie"`
	Log      *LogConfig      `mapstructure:"log"`
}

var defaults = map[string]any{
	"server.port":               "26722",
	"server.useHsts":            false,
	"server.useSecurityHeaders": true,
	"server.rateLimit":          10.0,
	"server.rateBurst":          20,
	"files.path":                "Files",
	"files.noClobber":           false,
	"files.lockNames":           false,
	"upload.maxBytes":           int64(1 << 30), // 1 GiB
	"upload.maxMemory":          int64(32 << 20),
	"upload.workers":            4,
	"database.path":             "filedrop.db",
	"activity.recent":           10,
	"activity.retention":        "720h",
	"cookie.secure":             false,
	"log.level":                 "info",
	"log.pretty":                false,
}

// LoadConfig reads configuration from defaults, an optional YAML file at
// configPath and environment variables, in increasing order of precedence.
// Environment variables use the upper-cased key with dots replaced by
// underscores, e.g. SERVER_PORT or FILES_PATH.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	errs := []string{}
	if c.Server.Port == "" {
		errs = append(errs, "server.port is required")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server.rateLimit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		errs = append(errs, "server.rateBurst must be greater than 0")
	}
	if c.Files.Path == "" {
		errs = append(errs, "files.path is required")
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, "upload.maxBytes must be greater than 0")
	}
	if c.Upload.MaxMemory <= 0 {
		errs = append(errs, "upload.maxMemory must be greater than 0")
	}
	if c.Upload.Workers <= 0 {
		errs = append(errs, "upload.workers must be greater than 0")
	}
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	if c.Activity.Recent < 0 {
		errs = append(errs, "activity.recent must not be negative")
	}
	if c.Activity.Retention < 0 {
		errs = append(errs, "activity.retention must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level is invalid: %q", c.Log.Level))
	}
	if len(errs) > 0 {
		return errors.New("configuration errors: " + strings.Join(errs, ", "))
	}
	return nil
}
