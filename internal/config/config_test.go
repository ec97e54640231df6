package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Data.ClimateFile)
	assert.Equal(t, "input/catalog.csv", cfg.Data.CatalogFile)
	assert.Equal(t, "input/weather", cfg.Data.WeatherDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1000.0, cfg.Estimate.HotWaterPowerW)
	assert.Equal(t, 15.0, cfg.Estimate.SimpleThresholdC)
	assert.Equal(t, 4, cfg.Simulate.Parallelism)
	assert.Empty(t, cfg.MQTT.Broker)
	assert.Equal(t, "heatpump", cfg.MQTT.TopicPrefix)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
data:
  climate_file: trj.csv
log:
  level: debug
  format: json
estimate:
  simple_threshold_c: 12
mqtt:
  broker: tcp://localhost:1883
  topic_prefix: house
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "trj.csv", cfg.Data.ClimateFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 12.0, cfg.Estimate.SimpleThresholdC)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "house", cfg.MQTT.TopicPrefix)
	// untouched keys keep their defaults
	assert.Equal(t, "input/catalog.csv", cfg.Data.CatalogFile)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HEATPUMP_SERVER_ADDR", ":7000")
	t.Setenv("HEATPUMP_SIMULATE_PARALLELISM", "8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Simulate.Parallelism)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	path := writeConfig(t, "estimate:\n  simple_threshold_c: 10\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "simple_threshold_c")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Addr: ":8080"},
		Estimate: EstimateConfig{HotWaterPowerW: 1000, SimpleThresholdC: 15},
	}
	assert.NoError(t, valid.Validate())

	c := valid
	c.Server.Addr = ""
	assert.Error(t, c.Validate())

	c = valid
	c.Estimate.HotWaterPowerW = -1
	assert.Error(t, c.Validate())

	c = valid
	c.Simulate.Parallelism = -2
	assert.Error(t, c.Validate())
}
