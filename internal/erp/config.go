package erp

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration
type Config struct {
	ERPVPN          string        `mapstructure:"erp_vpn"`
	ERPURL          string        `mapstructure:"erp_url"`
	APIKey          string        `mapstructure:"erp_api_key"`
	APISecret       string        `mapstructure:"erp_api_secret"`
	NginxCookie     string        `mapstructure:"nginx_cookie"`
	NginxCookieName string        `mapstructure:"nginx_cookie_name"` // reverse proxy auth cookie (default: "auth_cookie")
	Brand           string        `mapstructure:"erp_brand"`         // shown in the TUI status bar
	LogFile         string        `mapstructure:"log_file"`
	LogLevel        string        `mapstructure:"log_level"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`

	// Path is the config file that was read, empty when only the
	// environment was used.
	Path string `mapstructure:"-"`
}

var configKeys = []string{
	"erp_vpn", "erp_url", "erp_api_key", "erp_api_secret",
	"nginx_cookie", "nginx_cookie_name", "erp_brand",
	"log_file", "log_level", "request_timeout",
}

// configPaths are searched in order for a .erp-config file.
func configPaths() []string {
	return []string{
		".erp-config",
		"../.erp-config",
		filepath.Join(filepath.Dir(os.Args[0]), ".erp-config"),
		filepath.Join(filepath.Dir(os.Args[0]), "..", ".erp-config"),
	}
}

// LoadConfig reads the .erp-config file. BACKOFFICE_CONFIG points to an
// explicit file and BACKOFFICE_<KEY> environment variables override any key.
func LoadConfig() (*Config, error) {
	if path := os.Getenv("BACKOFFICE_CONFIG"); path != "" {
		return loadConfig([]string{path})
	}
	return loadConfig(configPaths())
}

func loadConfig(paths []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("nginx_cookie_name", "auth_cookie")
	v.SetDefault("erp_brand", "Back-office CLI")
	v.SetDefault("log_file", "backoffice.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", 30*time.Second)

	v.SetEnvPrefix("BACKOFFICE")
	v.AutomaticEnv()
	// AutomaticEnv only reaches keys viper already knows about during Unmarshal.
	for _, k := range configKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	var configPath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			configPath = p
			break
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", configPath, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	config.Path = configPath

	if config.ERPURL == "" || config.APIKey == "" || config.APISecret == "" {
		if configPath == "" {
			return nil, fmt.Errorf("config file not found. Copy .erp-config.example to .erp-config")
		}
		return nil, fmt.Errorf("missing required config: ERP_URL, ERP_API_KEY, ERP_API_SECRET")
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}

	return config, nil
}
