package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "localhost:8081"
	DefaultDatabase  = "gifthunt.db"
	DefaultAWSRegion = "us-east-1"
)

type Config struct {
	// Server-side settings
	DatabaseDSN  string        `env:"DATABASE_URI"`
	AuthSecret   string        `env:"AUTH_SECRET"`
	AppBaseURL   string        `env:"APP_BASE_URL"` // префикс ссылок в приглашениях и share-ссылках
	ShareLinkTTL time.Duration `env:"SHARE_LINK_TTL"`

	// Email (Amazon SES)
	SESFromEmail string `env:"SES_FROM_EMAIL"`
	SESFromName  string `env:"SES_FROM_NAME"`
	AWSRegion    string `env:"AWS_REGION"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres DSN или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.AppBaseURL, "app-url", cfg.AppBaseURL, "публичный адрес приложения для ссылок")
	flag.DurationVar(&cfg.ShareLinkTTL, "share-ttl", cfg.ShareLinkTTL, "срок жизни share-ссылки (0 = бессрочно)")
	flag.StringVar(&cfg.SESFromEmail, "ses-from", cfg.SESFromEmail, "адрес отправителя писем (если пусто, письма не отправляются)")
	flag.StringVar(&cfg.SESFromName, "ses-from-name", cfg.SESFromName, "имя отправителя писем")
	flag.StringVar(&cfg.AWSRegion, "aws-region", cfg.AWSRegion, "регион AWS для SES")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the GiftHunt server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = DefaultDatabase
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = DefaultAWSRegion
	}
	if cfg.ShareLinkTTL < 0 {
		cfg.ShareLinkTTL = 0
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}
	cfg.AppBaseURL = strings.TrimRight(cfg.AppBaseURL, "/")
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = cfg.ServerURL
	}

	// Fill client defaults if empty
	if cfg.TokenFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.TokenFile = filepath.Join(dir, "GiftHunt", "auth_token")
		} else {
			home, _ := os.UserHomeDir()
			cfg.TokenFile = filepath.Join(home, ".gifthunt_token")
		}
	}

	return cfg
}
