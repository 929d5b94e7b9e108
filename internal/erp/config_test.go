package erp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".erp-config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `# back-office
ERP_URL=https://erp.example.com
ERP_API_KEY=abcdefghijkl
ERP_API_SECRET=secret
`)

	config, err := loadConfig([]string{filepath.Join(t.TempDir(), "missing"), path})
	require.NoError(t, err)
	require.Equal(t, "https://erp.example.com", config.ERPURL)
	require.Equal(t, "abcdefghijkl", config.APIKey)
	require.Equal(t, "secret", config.APISecret)
	require.Equal(t, "auth_cookie", config.NginxCookieName)
	require.Equal(t, "Back-office CLI", config.Brand)
	require.Equal(t, "info", config.LogLevel)
	require.Equal(t, 30*time.Second, config.RequestTimeout)
	require.Equal(t, path, config.Path)
}

func TestLoadConfigFileValues(t *testing.T) {
	path := writeConfig(t, `ERP_URL=https://erp.example.com
ERP_VPN=http://10.0.0.2
ERP_API_KEY=key
ERP_API_SECRET=secret
NGINX_COOKIE=cookie
NGINX_COOKIE_NAME=proxy_auth
ERP_BRAND=Loja
REQUEST_TIMEOUT=5s
`)

	config, err := loadConfig([]string{path})
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.2", config.ERPVPN)
	require.Equal(t, "cookie", config.NginxCookie)
	require.Equal(t, "proxy_auth", config.NginxCookieName)
	require.Equal(t, "Loja", config.Brand)
	require.Equal(t, 5*time.Second, config.RequestTimeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `ERP_URL=https://erp.example.com
ERP_API_KEY=key
ERP_API_SECRET=secret
`)
	t.Setenv("BACKOFFICE_ERP_BRAND", "Filial Centro")
	t.Setenv("BACKOFFICE_ERP_URL", "https://other.example.com")

	config, err := loadConfig([]string{path})
	require.NoError(t, err)
	require.Equal(t, "Filial Centro", config.Brand)
	require.Equal(t, "https://other.example.com", config.ERPURL)
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("BACKOFFICE_ERP_URL", "https://erp.example.com")
	t.Setenv("BACKOFFICE_ERP_API_KEY", "key")
	t.Setenv("BACKOFFICE_ERP_API_SECRET", "secret")

	config, err := loadConfig([]string{filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)
	require.Equal(t, "", config.Path)
	require.Equal(t, "key", config.APIKey)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := loadConfig([]string{filepath.Join(t.TempDir(), "missing")})
	require.ErrorContains(t, err, "config file not found")

	path := writeConfig(t, "ERP_URL=https://erp.example.com\n")
	_, err = loadConfig([]string{path})
	require.ErrorContains(t, err, "missing required config")
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"", "info", "DEBUG", "warn", "error"} {
		_, err := parseLevel(s)
		require.NoError(t, err, s)
	}
	_, err := parseLevel("verbose")
	require.Error(t, err)
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backoffice.log")
	logger, closer, err := NewLogger(&Config{LogFile: path, LogLevel: "info"})
	require.NoError(t, err)

	logger.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello")
	require.Contains(t, string(data), "k=v")
}
