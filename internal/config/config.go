// Package config handles application configuration via viper with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DBConfig for the Postgres connection.
type DBConfig struct {
	Host, User, Password, DBName, SSLMode string
	Port                                  int
}

// SMTPConfig for the outbound mail dialer.
type SMTPConfig struct {
	Host, User, Password string
	Port                 int
}

// Config holds all configurable values for the app.
type Config struct {
	Env        string
	HTTPHost   string
	HTTPPort   int
	OwnerEmail string
	FromEmail  string

	RateLimitMax    int
	RateLimitWindow time.Duration

	DB   DBConfig
	SMTP SMTPConfig
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.DBName, c.DB.SSLMode,
	)
}

// Load reads configuration from an optional config file plus
// PESTCONTROL_* environment overrides and returns a populated Config.
func Load() (Config, error) {
	viper.SetDefault("env", "development")
	viper.SetDefault("http.host", "0.0.0.0")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("owner_email", "qualitypestcontrolservices1@gmail.com")
	viper.SetDefault("from_email", "Quality Pest Control <bookings@qualitypestcontrol.in>")
	viper.SetDefault("rate_limit.max_requests", 3)
	viper.SetDefault("rate_limit.window", "10m")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("smtp.port", 587)

	_ = viper.ReadInConfig() // ignore missing config file

	window, err := time.ParseDuration(viper.GetString("rate_limit.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate_limit.window: %w", err)
	}

	c := Config{
		Env:             viper.GetString("env"),
		HTTPHost:        viper.GetString("http.host"),
		HTTPPort:        viper.GetInt("http.port"),
		OwnerEmail:      viper.GetString("owner_email"),
		FromEmail:       viper.GetString("from_email"),
		RateLimitMax:    viper.GetInt("rate_limit.max_requests"),
		RateLimitWindow: window,
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			User:     viper.GetString("smtp.user"),
			Password: viper.GetString("smtp.password"),
		},
	}

	applyEnvOverrides(&c)
	return c, nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("PESTCONTROL_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("PESTCONTROL_HTTP_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &c.HTTPPort)
	}
	if v := os.Getenv("PESTCONTROL_OWNER_EMAIL"); v != "" {
		c.OwnerEmail = v
	}
	if v := os.Getenv("PESTCONTROL_FROM_EMAIL"); v != "" {
		c.FromEmail = v
	}
	if v := os.Getenv("PESTCONTROL_DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("PESTCONTROL_DB_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &c.DB.Port)
	}
	if v := os.Getenv("PESTCONTROL_DB_USER"); v != "" {
		c.DB.User = v
	}
	if v := os.Getenv("PESTCONTROL_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("PESTCONTROL_DB_NAME"); v != "" {
		c.DB.DBName = v
	}
	if v := os.Getenv("PESTCONTROL_SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("PESTCONTROL_SMTP_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &c.SMTP.Port)
	}
	if v := os.Getenv("PESTCONTROL_SMTP_USER"); v != "" {
		c.SMTP.User = v
	}
	if v := os.Getenv("PESTCONTROL_SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("PESTCONTROL_RATE_LIMIT_MAX"); v != "" {
		fmt.Sscanf(v, "%d", &c.RateLimitMax)
	}
	if v := os.Getenv("PESTCONTROL_RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RateLimitWindow = d
		}
	}
}
