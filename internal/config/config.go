package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type CMSConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type EmailConfig struct {
	// Provider is "cms" (the CMS mailer generates and checks codes) or
	// "smtp" (we generate the code and send it ourselves).
	Provider     string `yaml:"provider"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type CookiesConfig struct {
	MaxAgeHours int `yaml:"max_age_hours"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	AppURL   string `yaml:"app_url"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	CMS     CMSConfig     `yaml:"cms"`
	Email   EmailConfig   `yaml:"email"`
	Cookies CookiesConfig `yaml:"cookies"`
	// EncryptionSecret protects passwords held by pending-verification
	// records between the register and verify-code steps.
	EncryptionSecret string `yaml:"encryption_secret"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:3000"
	}
	if cfg.CMS.URL == "" {
		cfg.CMS.URL = "http://localhost:1337"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "cms"
	}
	if cfg.Cookies.MaxAgeHours <= 0 {
		cfg.Cookies.MaxAgeHours = 14
	}
	return &cfg
}

func (c *Config) CookieMaxAge() time.Duration {
	return time.Duration(c.Cookies.MaxAgeHours) * time.Hour
}

// CookieDomain extracts the hostname from the app URL. Localhost gets no
// explicit domain so browsers keep the cookie host-only.
func (c *Config) CookieDomain() string {
	u, err := url.Parse(c.AppURL)
	if err != nil || u.Hostname() == "localhost" {
		return ""
	}
	return u.Hostname()
}

func (c *Config) CookieSecure() bool {
	return strings.HasPrefix(c.AppURL, "https://")
}
