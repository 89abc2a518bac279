package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	LoginPath string
	// JWTSecret enables signature verification of access tokens. Empty
	// means tokens are decoded without verification, the backend being
	// the only party that can check them.
	JWTSecret string
}

type SessionConfig struct {
	CookieSecure bool
	CookieMaxAge time.Duration
	FilePath     string
}

type LayoutConfig struct {
	ViewTTL time.Duration
}

type SignupConfig struct {
	DefaultInstitutionID int
}

type ObservabilityConfig struct {
	ServiceName  string
	OTLPEndpoint string
	MetricsAddr  string
	PprofAddr    string
}

type Config struct {
	ServerPort    string
	LogLevel      string
	API           APIConfig
	Auth          AuthConfig
	Session       SessionConfig
	Layout        LayoutConfig
	Signup        SignupConfig
	Observability ObservabilityConfig
}

// Load reads configuration from the environment on top of the defaults.
// Keys map to upper-case env vars with dots replaced, e.g. api.base_url is
// API_BASE_URL.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ServerPort: v.GetString("server.port"),
		LogLevel:   v.GetString("log.level"),
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Auth: AuthConfig{
			LoginPath: v.GetString("auth.login_path"),
			JWTSecret: v.GetString("auth.jwt_secret"),
		},
		Session: SessionConfig{
			CookieSecure: v.GetBool("session.cookie_secure"),
			CookieMaxAge: v.GetDuration("session.cookie_max_age"),
			FilePath:     v.GetString("session.file"),
		},
		Layout: LayoutConfig{
			ViewTTL: v.GetDuration("layout.view_ttl"),
		},
		Signup: SignupConfig{
			DefaultInstitutionID: v.GetInt("signup.default_institution_id"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  v.GetString("otel.service_name"),
			OTLPEndpoint: v.GetString("otel.exporter_endpoint"),
			MetricsAddr:  v.GetString("metrics.addr"),
			PprofAddr:    v.GetString("pprof.addr"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8091")
	v.SetDefault("log.level", "info")
	v.SetDefault("api.base_url", "http://127.0.0.1:5000/api")
	v.SetDefault("api.timeout", 5000*time.Millisecond)
	v.SetDefault("auth.login_path", "/login")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("session.cookie_max_age", 24*time.Hour)
	v.SetDefault("session.file", defaultSessionFile())
	v.SetDefault("layout.view_ttl", 10*time.Minute)
	v.SetDefault("signup.default_institution_id", 1)
	v.SetDefault("otel.service_name", "edudash")
	v.SetDefault("otel.exporter_endpoint", "otel-collector:4318")
	v.SetDefault("metrics.addr", ":9092")
	v.SetDefault("pprof.addr", ":6060")
}

// Validate rejects settings the HTTP client or the gate cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL %q must be an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if !strings.HasPrefix(c.Auth.LoginPath, "/") {
		return fmt.Errorf("AUTH_LOGIN_PATH %q must be an absolute path", c.Auth.LoginPath)
	}
	return nil
}

// defaultSessionFile is where the CLI keeps its session:
// $XDG_CONFIG_HOME/edudash/session.json, falling back to ~/.config.
func defaultSessionFile() string {
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "edudash-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "edudash", "session.json")
}
