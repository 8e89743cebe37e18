package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT"`
		Env  string `yaml:"env" env:"ENV"`
	} `yaml:"server"`
	Database struct {
		DSN            string `yaml:"dsn" env:"DSN"`
		MaxOpenConns   int    `yaml:"max_open_conns" env:"MAXOPENCONNS"`
		MaxIdleConns   int    `yaml:"max_idle_conns" env:"MAXIDLECONNS"`
		MaxIdleTime    string `yaml:"max_idle_time" env:"MAXIDLETIME"`
		MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONSPATH"`
	} `yaml:"database"`
	SMTP struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER"`
	} `yaml:"smtp"`
	JWT struct {
		Secret string `yaml:"secret" env:"JWTSECRET"`
		Issuer string `yaml:"issuer" env:"JWTISSUER"`
	} `yaml:"jwt"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS"`
		Burst   int     `yaml:"burst" env:"BURST"`
		Enabled bool    `yaml:"enabled" env:"LENABLED"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	err = yaml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode assembles the app configuration. A .env file is loaded first when
// present, then the YAML file named by the CONFIG environment variable
// (config.yaml by default), and finally the env-tagged fields are parsed from
// the environment so any setting can be overridden without touching the file
// and credentials never have to live in it.
func Decode() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	path := os.Getenv("CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	err = env.Parse(&cfg)
	if err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 25
	}
	if cfg.Database.MaxIdleTime == "" {
		cfg.Database.MaxIdleTime = "15m"
	}
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "migrations"
	}
	if cfg.Limiter.RPS == 0 {
		cfg.Limiter.RPS = 4
		cfg.Limiter.Burst = 8
		cfg.Limiter.Enabled = true
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "recensio"
	}
}
