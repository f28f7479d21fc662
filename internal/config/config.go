package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the service. Values come from an
// optional YAML file named by CONFIG_PATH, with environment variables taking
// precedence over both defaults and file values.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port" validate:"required"`
	} `yaml:"server"`

	Auth struct {
		APIKey     string   `yaml:"api_key"`
		AllowedIPs []string `yaml:"allowed_ips" validate:"dive,ip"`
	} `yaml:"auth"`

	RateLimit struct {
		PerMinute int `yaml:"per_minute" validate:"min=0"`
	} `yaml:"rate_limit"`

	Image struct {
		Quality int     `yaml:"quality" validate:"min=1,max=100"`
		DPI     float64 `yaml:"dpi" validate:"gt=0"`
	} `yaml:"image"`

	TempDir string `yaml:"temp_dir" validate:"required"`
	Debug   bool   `yaml:"debug"`

	Logger struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
		MaxBackups int    `yaml:"max_backups" validate:"min=0"`
		MaxAgeDays int    `yaml:"max_age_days" validate:"min=0"`
		Compress   bool   `yaml:"compress"`
		Level      string `yaml:"level"`
	} `yaml:"logger"`

	Sentry struct {
		DSN         string `yaml:"dsn"`
		Environment string `yaml:"environment"`
	} `yaml:"sentry"`
}

// Load reads the configuration, consulting CONFIG_PATH for an optional YAML
// overlay. It panics on invalid values so a misconfigured instance never
// starts listening.
func Load() Config {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom behaves like Load but reads the YAML overlay from the given path.
// An empty path skips the overlay.
func LoadFrom(path string) Config {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("config: cannot read %s: %v", path, err))
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			panic(fmt.Sprintf("config: cannot parse %s: %v", path, err))
		}
	}

	applyEnv(&cfg)

	if cfg.Debug {
		cfg.Logger.Level = "debug"
	}

	mustValidate(cfg)
	return cfg
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.RateLimit.PerMinute = 0
	cfg.Image.Quality = 90
	cfg.Image.DPI = 200
	cfg.TempDir = os.TempDir()
	cfg.Logger.MaxSizeMB = 100
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 28
	cfg.Logger.Level = "info"
	return cfg
}

func applyEnv(cfg *Config) {
	envString("HOST", &cfg.Server.Host)
	envString("PORT", &cfg.Server.Port)
	envString("API_KEY", &cfg.Auth.APIKey)
	envCSV("ALLOWED_IPS", &cfg.Auth.AllowedIPs)
	envInt("RATE_LIMIT_PER_MINUTE", &cfg.RateLimit.PerMinute)
	envInt("IMAGE_QUALITY", &cfg.Image.Quality)
	envFloat("IMAGE_DPI", &cfg.Image.DPI)
	envString("TEMP_DIR", &cfg.TempDir)
	envBool("DEBUG", &cfg.Debug)
	envString("LOG_FILE", &cfg.Logger.File)
	envInt("LOG_MAX_SIZE_MB", &cfg.Logger.MaxSizeMB)
	envInt("LOG_MAX_BACKUPS", &cfg.Logger.MaxBackups)
	envInt("LOG_MAX_AGE_DAYS", &cfg.Logger.MaxAgeDays)
	envBool("LOG_COMPRESS", &cfg.Logger.Compress)
	envString("LOG_LEVEL", &cfg.Logger.Level)
	envString("SENTRY_DSN", &cfg.Sentry.DSN)
	envString("SENTRY_ENVIRONMENT", &cfg.Sentry.Environment)
}

func mustValidate(cfg Config) {
	if err := validator.New().Struct(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		panic(fmt.Sprintf("config: invalid port %q", cfg.Server.Port))
	}
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("config: %s must be an integer, got %q", key, v))
	}
	*dst = n
}

func envFloat(key string, dst *float64) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		panic(fmt.Sprintf("config: %s must be a number, got %q", key, v))
	}
	*dst = f
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Sprintf("config: %s must be a boolean, got %q", key, v))
	}
	*dst = b
}

func envCSV(key string, dst *[]string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
