package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "cakes")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, c.Driver)
	assert.Equal(t, 3306, c.DBPort)
	assert.Equal(t, 3000, c.AppPort)
	assert.Equal(t, ":3000", c.Addr())
	assert.Equal(t, "db.local:3306", c.DBAddr())
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, c.Driver)
	assert.Equal(t, 5432, c.DBPort)
	assert.Equal(t, 8081, c.AppPort)
	assert.Equal(t, 2*time.Second, c.ShutdownTimeout)

	t.Setenv("DB_PORT", "6543")
	c, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 6543, c.DBPort)
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	setRequired(t)
	t.Setenv("DB_PORT", "abc")
	_, err = Load()
	assert.Error(t, err)

	setRequired(t)
	t.Setenv("APP_PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}

func TestDBAddr(t *testing.T) {
	assert.Equal(t, "db.local:3306", Config{DBHost: "db.local", DBPort: 3306}.DBAddr())
	assert.Equal(t, "[::1]:3306", Config{DBHost: "::1", DBPort: 3306}.DBAddr())
	assert.Equal(t, "10.0.0.5:5432", Config{DBHost: "10.0.0.5", DBPort: 5432}.DBAddr())
}
