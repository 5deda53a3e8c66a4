package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv sets an environment variable for the duration of a test.
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, existed := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

// clearEnv clears an environment variable for the duration of a test.
func clearEnv(t *testing.T, key string) {
	t.Helper()
	old, existed := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, old)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"APP_ENV", "LOG_LEVEL",
		"DB_ENABLED", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSLMODE", "DB_CONNECT_TIMEOUT", "DB_AUTO_MIGRATE",
		"ENROLLMENT_COMPAT",
	}
	for _, v := range envVars {
		clearEnv(t, v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// App defaults
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)

	// Database defaults
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "registrar", cfg.Database.User)
	assert.Equal(t, "", cfg.Database.Password)
	assert.Equal(t, "jdbc_db", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.True(t, cfg.Database.AutoMigrate)

	// Enrollment defaults
	assert.False(t, cfg.Enrollment.CompatMode)
}

func TestLoad_DatabaseConfig(t *testing.T) {
	setEnv(t, "DB_HOST", "db.internal")
	setEnv(t, "DB_PORT", "6543")
	setEnv(t, "DB_USER", "root")
	setEnv(t, "DB_PASSWORD", "secret")
	setEnv(t, "DB_NAME", "school")
	setEnv(t, "DB_SSLMODE", "require")
	setEnv(t, "DB_CONNECT_TIMEOUT", "2s")
	setEnv(t, "DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "school", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 2*time.Second, cfg.Database.ConnectTimeout)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_AppConfig(t *testing.T) {
	setEnv(t, "APP_ENV", "production")
	setEnv(t, "LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "error", cfg.App.LogLevel)
}

func TestLoad_EnrollmentCompat(t *testing.T) {
	setEnv(t, "ENROLLMENT_COMPAT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Enrollment.CompatMode)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_ENABLED", "perhaps"},
		{"DB_PORT", "not-a-number"},
		{"DB_CONNECT_TIMEOUT", "invalid"},
		{"DB_AUTO_MIGRATE", "maybe"},
		{"ENROLLMENT_COMPAT", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setEnv(t, tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestConfig_DatabaseEnabled(t *testing.T) {
	assert.True(t, (&Config{Database: DatabaseConfig{Enabled: true, Host: "localhost", DBName: "jdbc_db"}}).DatabaseEnabled())
	assert.False(t, (&Config{Database: DatabaseConfig{Enabled: false, Host: "localhost", DBName: "jdbc_db"}}).DatabaseEnabled())
	assert.False(t, (&Config{Database: DatabaseConfig{Enabled: true, Host: "", DBName: "jdbc_db"}}).DatabaseEnabled())
	assert.False(t, (&Config{Database: DatabaseConfig{Enabled: true, Host: "localhost"}}).DatabaseEnabled())
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"production", "production", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{App: AppConfig{Env: tt.env}}
			assert.Equal(t, tt.expected, cfg.App.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{App: AppConfig{Env: tt.env}}
			assert.Equal(t, tt.expected, cfg.App.IsProduction())
		})
	}
}
