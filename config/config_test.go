package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_URL", "https://careers.example.com/")
	t.Setenv("RATE_LIMIT_ENABLED", "not-a-bool")
	t.Setenv("DB_MAX_CONN_LIFETIME", "30m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORE_DRIVER", "Memory")
	for _, k := range []string{"PORT", "NOTIFICATIONS_LIMIT", "TRUST_PROXY_HEADERS", "ES_INTERNSHIPS_INDEX"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "https://careers.example.com", c.AppURL)
	assert.True(t, c.RateLimitEnabled, "invalid bool keeps the default")
	assert.Equal(t, 30*time.Minute, c.DBMaxConnLife)
	assert.Equal(t, 20, c.NotificationsLimit)
	assert.False(t, c.TrustProxyHeaders)
	assert.Equal(t, "internships", c.ESInternshipsIndex)
}

func TestLists(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " https://a.test, ,https://b.test ", ElasticsearchAddrs: "http://es:9200"}
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, c.CORSOrigins())
	assert.Equal(t, []string{"http://es:9200"}, c.ESAddrs())
	assert.Empty(t, (&Config{}).CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{DBUser: "app", DBPassword: "p@ss word", DBHost: "db", DBPort: "5432", DBName: "careers", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/careers?sslmode=disable", c.PostgresDSN())
}

func TestValidate(t *testing.T) {
	ok := &Config{StoreDriver: "memory", IdPJWTSecret: "s"}
	require.NoError(t, ok.Validate())

	bad := &Config{StoreDriver: "mongo", NotificationsLimit: -1}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
	assert.Contains(t, err.Error(), "IDP_JWT_SECRET")
	assert.Contains(t, err.Error(), "NOTIFICATIONS_LIMIT")
}
