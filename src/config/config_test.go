package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"BOOKREC_DB_PATH", "BOOKREC_SIMILARITY_PATH", "BOOKREC_SIMILARITY_REQUIRED",
		"BOOKREC_ADDR", "BOOKREC_RATE_LIMIT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /data/books.db
similarity:
  archive: /data/similarity.zip
  entry: sim.npy
  required: true
  cache_size: 16
server:
  addr: "127.0.0.1:9000"
  cors_origins: ["http://localhost:3000"]
  rate_limit: 30
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/books.db", cfg.Database.Path)
	assert.Equal(t, "/data/similarity.zip", cfg.Similarity.Path)
	assert.Equal(t, "sim.npy", cfg.Similarity.Entry)
	assert.True(t, cfg.Similarity.Required)
	assert.Equal(t, 16, cfg.Similarity.CacheSize)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOKREC_DB_PATH", "/env/books.db")
	t.Setenv("BOOKREC_SIMILARITY_PATH", "/env/similarity.npy")
	t.Setenv("BOOKREC_SIMILARITY_REQUIRED", "true")
	t.Setenv("BOOKREC_ADDR", ":9999")
	t.Setenv("BOOKREC_RATE_LIMIT", "0")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/books.db", cfg.Database.Path)
	assert.Equal(t, "/env/similarity.npy", cfg.Similarity.Path)
	assert.True(t, cfg.Similarity.Required)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfigInvalidEnvValues(t *testing.T) {
	for key, value := range map[string]string{
		"BOOKREC_SIMILARITY_REQUIRED": "maybe",
		"BOOKREC_RATE_LIMIT":          "many",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadConfigBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [oops"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "пустой путь к базе",
			mutate:  func(c *Config) { c.Database.Path = " " },
			wantErr: "базе данных",
		},
		{
			name: "обязательная матрица без пути",
			mutate: func(c *Config) {
				c.Similarity.Required = true
				c.Similarity.Path = ""
			},
			wantErr: "матрица сходства",
		},
		{
			name:    "архив без имени файла",
			mutate:  func(c *Config) { c.Similarity.Entry = "" },
			wantErr: "архива",
		},
		{
			name:    "отрицательный кэш",
			mutate:  func(c *Config) { c.Similarity.CacheSize = -1 },
			wantErr: "кэша",
		},
		{
			name:    "отрицательное ограничение запросов",
			mutate:  func(c *Config) { c.Server.RateLimit = -1 },
			wantErr: "ограничение",
		},
		{
			name:    "неизвестный формат логов",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "формат логов",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
