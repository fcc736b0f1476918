package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Zachkp/portfolio/internal/cardswap"
)

// Config is the site configuration.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
	CardSwap cardswap.Config
}

type ServerConfig struct {
	Port            string
	TemplatesGlob   string
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Path             string
	VisitorRetention time.Duration
}

type SMTPConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	ToEmail string
}

// Configured reports whether credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}

type AdminConfig struct {
	Username string
	Password string
	// PasswordHash is a bcrypt hash; it wins over Password when set.
	PasswordHash string
}

// Load reads defaults, then an optional config file at path, then the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			TemplatesGlob:   v.GetString("server.templates"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Database: DatabaseConfig{
			Path:             v.GetString("database.path"),
			VisitorRetention: v.GetDuration("database.visitor_retention"),
		},
		SMTP: SMTPConfig{
			Host:    v.GetString("smtp.host"),
			Port:    v.GetString("smtp.port"),
			User:    v.GetString("smtp.user"),
			Pass:    v.GetString("smtp.pass"),
			ToEmail: v.GetString("smtp.to_email"),
		},
		Admin: AdminConfig{
			Username:     v.GetString("admin.username"),
			Password:     v.GetString("admin.password"),
			PasswordHash: v.GetString("admin.password_hash"),
		},
		CardSwap: cardswap.Config{
			Width:            v.GetFloat64("cardswap.width"),
			Height:           v.GetFloat64("cardswap.height"),
			CardDistance:     v.GetFloat64("cardswap.card_distance"),
			VerticalDistance: v.GetFloat64("cardswap.vertical_distance"),
			Interval:         v.GetDuration("cardswap.interval"),
			PauseOnHover:     v.GetBool("cardswap.pause_on_hover"),
			Skew:             v.GetFloat64("cardswap.skew"),
			Easing:           v.GetString("cardswap.preset"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	cs := cardswap.DefaultConfig()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.templates", "templates/*")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", "portfolio.db")
	v.SetDefault("database.visitor_retention", 365*24*time.Hour)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.to_email", "zachkordaspotter@gmail.com")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("cardswap.width", cs.Width)
	v.SetDefault("cardswap.height", cs.Height)
	v.SetDefault("cardswap.card_distance", cs.CardDistance)
	v.SetDefault("cardswap.vertical_distance", cs.VerticalDistance)
	v.SetDefault("cardswap.interval", cs.Interval)
	v.SetDefault("cardswap.pause_on_hover", true)
	v.SetDefault("cardswap.skew", cs.Skew)
	v.SetDefault("cardswap.preset", cs.Easing)
}

// bindEnv keeps the site's original variable names working.
func bindEnv(v *viper.Viper) {
	pairs := map[string]string{
		"server.port":             "PORT",
		"logging.level":           "LOG_LEVEL",
		"logging.format":          "LOG_FORMAT",
		"database.path":           "DB_PATH",
		"smtp.host":               "SMTP_HOST",
		"smtp.port":               "SMTP_PORT",
		"smtp.user":               "SMTP_USER",
		"smtp.pass":               "SMTP_PASS",
		"smtp.to_email":           "TO_EMAIL",
		"admin.username":          "ADMIN_USERNAME",
		"admin.password":          "ADMIN_PASSWORD",
		"admin.password_hash":     "ADMIN_PASSWORD_HASH",
		"cardswap.interval":       "CARDSWAP_INTERVAL",
		"cardswap.preset":         "CARDSWAP_PRESET",
		"cardswap.pause_on_hover": "CARDSWAP_PAUSE_ON_HOVER",
		"cardswap.skew":           "CARDSWAP_SKEW",
	}
	for key, env := range pairs {
		_ = v.BindEnv(key, env)
	}
}

func (c *Config) validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.CardSwap.Easing) {
	case cardswap.EasingElastic, cardswap.EasingLinearFast:
	default:
		return fmt.Errorf("invalid card swap preset %q", c.CardSwap.Easing)
	}
	if err := c.CardSwap.Validate(); err != nil {
		return fmt.Errorf("card swap: %w", err)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}
