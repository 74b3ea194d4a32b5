package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestInitConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := InitConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Auth.CodeTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, int64(10<<20), cfg.Limits.MaxBodySize)
	assert.Equal(t, 2000, cfg.Limits.RequestNumber)
	assert.Equal(t, 200*time.Minute, cfg.Limits.RequestWindow)
}

func TestInitConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  port: "8080"
database:
  driver: sqlite
  path: /tmp/tasks.db
auth:
  secret: `+testSecret+`
  token_ttl: 1h
  code_ttl: 5m
mail:
  driver: kafka
  kafka:
    brokers: ["localhost:9092"]
    topic: mails
`)
	cfg, err := InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/tasks.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.CodeTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Mail.Kafka.Brokers)
	// untouched sections keep their defaults
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	require.NoError(t, cfg.Validate())
}

func TestInitConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "app:\n  port: \"8080\"\n")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,172.16.0.0/12")

	cfg, err := InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, testSecret, cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Mail.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Allows.TrustedProxies)
	assert.Empty(t, Default().Allows.TrustedProxies)
}

func TestInitConfig_InvalidInput(t *testing.T) {
	_, err := InitConfig(writeConfig(t, "app: [unterminated"))
	require.Error(t, err)

	t.Setenv("TOKEN_TTL", "forever")
	_, err = InitConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Auth.Secret = testSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty secret", func(c *Config) { c.Auth.Secret = "" }, "auth.secret"},
		{"short secret", func(c *Config) { c.Auth.Secret = strings.Repeat("x", 31) }, "auth.secret"},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "token_ttl"},
		{"zero code ttl", func(c *Config) { c.Auth.CodeTTL = 0 }, "code_ttl"},
		{"bcrypt cost", func(c *Config) { c.Auth.BcryptCost = 2 }, "bcrypt_cost"},
		{"trusted proxies", func(c *Config) { c.Allows.TrustedProxies = []string{"10.0.0.1", "10.0.0.0/8", "::1"} }, ""},
		{"trusted proxy hostname", func(c *Config) { c.Allows.TrustedProxies = []string{"lb.internal"} }, "trusted_proxies"},
		{"db driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"smtp without host", func(c *Config) { c.Mail.Driver = "smtp" }, "mail.smtp.host"},
		{"kafka without brokers", func(c *Config) { c.Mail.Driver = "kafka" }, "mail.kafka"},
		{"mail driver", func(c *Config) { c.Mail.Driver = "pigeon" }, "mail.driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
