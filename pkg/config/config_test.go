package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DatasetConfig(t *testing.T) {
	os.Setenv("DATASET_URL", "https://data.example.org/facilities.json")
	os.Setenv("DATASET_CACHE_TTL", "60")
	defer func() {
		os.Unsetenv("DATASET_URL")
		os.Unsetenv("DATASET_CACHE_TTL")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://data.example.org/facilities.json", cfg.Dataset.URL)
	assert.Equal(t, 60, cfg.Dataset.CacheTTLSecs)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("DATASET_PATH")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "data/facilities.json", cfg.Dataset.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.ListenAddr())
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-number")
	defer os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
