// Package config loads the site's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Keys, each bound to the upper-cased environment variable of the same name.
const (
	KeyPort           = "port"
	KeyGinMode        = "gin_mode"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyDatabaseURL    = "database_url"
	KeySMTPHost       = "smtp_host"
	KeySMTPPort       = "smtp_port"
	KeySMTPUser       = "smtp_user"
	KeySMTPPass       = "smtp_pass"
	KeyMailFrom       = "mail_from"
	KeyOwnerEmail     = "to_email"
	KeyNATSURL        = "nats_url"
	KeyAdminUsername  = "admin_username"
	KeyAdminPassword  = "admin_password"
	KeyContactTimeout = "contact_timeout"
)

var defaults = map[string]string{
	KeyPort:           "8080",
	KeyGinMode:        "release",
	KeyLogLevel:       "info",
	KeyLogFormat:      "console",
	KeyDatabaseURL:    "sqlite://portfolio.db",
	KeySMTPHost:       "smtp.gmail.com",
	KeySMTPPort:       "587",
	KeyContactTimeout: "15s",
}

var ErrInvalid = errors.New("invalid configuration")

type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Enabled reports whether credentials are present.
func (s SMTP) Enabled() bool { return s.User != "" && s.Pass != "" }

type Config struct {
	Port        string // PORT
	GinMode     string // GIN_MODE (debug|release|test)
	LogLevel    string // LOG_LEVEL
	LogFormat   string // LOG_FORMAT (console|json)
	DatabaseURL string // DATABASE_URL
	SMTP        SMTP   // SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, MAIL_FROM
	OwnerEmail  string // TO_EMAIL (optional owner copy of each submission)
	NATSURL     string // NATS_URL (optional, empty = no events)

	AdminUsername string // ADMIN_USERNAME
	AdminPassword string // ADMIN_PASSWORD (empty = admin disabled)

	ContactTimeout time.Duration // CONTACT_TIMEOUT
}

// Addr is the listen address for Port.
func (c *Config) Addr() string { return ":" + c.Port }

// AdminEnabled reports whether the admin dashboard is reachable.
func (c *Config) AdminEnabled() bool { return c.AdminPassword != "" }

// NewViper returns a viper instance with defaults and env bindings. Callers
// may bind flags to it before calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	for _, k := range []string{
		KeyPort, KeyGinMode, KeyLogLevel, KeyLogFormat, KeyDatabaseURL,
		KeySMTPHost, KeySMTPPort, KeySMTPUser, KeySMTPPass, KeyMailFrom,
		KeyOwnerEmail, KeyNATSURL, KeyAdminUsername, KeyAdminPassword, KeyContactTimeout,
	} {
		_ = v.BindEnv(k, strings.ToUpper(k))
	}
	return v
}

// Load reads the environment into a validated Config.
func Load() (*Config, error) {
	return FromViper(NewViper())
}

func FromViper(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyContactTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: CONTACT_TIMEOUT: %w", ErrInvalid, err)
	}

	c := &Config{
		Port:        v.GetString(KeyPort),
		GinMode:     v.GetString(KeyGinMode),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		DatabaseURL: v.GetString(KeyDatabaseURL),
		SMTP: SMTP{
			Host: v.GetString(KeySMTPHost),
			Port: v.GetString(KeySMTPPort),
			User: v.GetString(KeySMTPUser),
			Pass: v.GetString(KeySMTPPass),
			From: v.GetString(KeyMailFrom),
		},
		OwnerEmail:     v.GetString(KeyOwnerEmail),
		NATSURL:        v.GetString(KeyNATSURL),
		AdminUsername:  v.GetString(KeyAdminUsername),
		AdminPassword:  v.GetString(KeyAdminPassword),
		ContactTimeout: timeout,
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.User
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if err := validPort(c.Port); err != nil {
		return fmt.Errorf("%w: PORT: %w", ErrInvalid, err)
	}
	if err := validPort(c.SMTP.Port); err != nil {
		return fmt.Errorf("%w: SMTP_PORT: %w", ErrInvalid, err)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: GIN_MODE %q", ErrInvalid, c.GinMode)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalid, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalid, c.LogFormat)
	}
	if c.ContactTimeout <= 0 {
		return fmt.Errorf("%w: CONTACT_TIMEOUT must be positive", ErrInvalid)
	}
	return nil
}

func validPort(p string) error {
	n, err := strconv.Atoi(p)
	if err != nil {
		return err
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("%d out of range", n)
	}
	return nil
}
