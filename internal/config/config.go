package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Log      LogConfig      `mapstructure:"log"`
	Estimate EstimateConfig `mapstructure:"estimate"`
	Simulate SimulateConfig `mapstructure:"simulate"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DataConfig struct {
	ClimateFile string `mapstructure:"climate_file"` // empty = built-in tables
	CatalogFile string `mapstructure:"catalog_file"`
	WeatherDir  string `mapstructure:"weather_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type EstimateConfig struct {
	HotWaterPowerW   float64 `mapstructure:"hot_water_power_w"`
	SimpleThresholdC float64 `mapstructure:"simple_threshold_c"`
}

type SimulateConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

type MQTTConfig struct {
	Broker      string `mapstructure:"broker"` // empty disables publishing
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

// EnvPrefix is prepended to every environment override, e.g. HEATPUMP_SERVER_ADDR.
const EnvPrefix = "HEATPUMP"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("data.climate_file", "")
	v.SetDefault("data.catalog_file", "input/catalog.csv")
	v.SetDefault("data.weather_dir", "input/weather")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("estimate.hot_water_power_w", 1000.0)
	v.SetDefault("estimate.simple_threshold_c", 15.0)
	v.SetDefault("simulate.parallelism", 4)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "heatpump-simulator")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic_prefix", "heatpump")
}

// Load reads the configuration. An empty path searches for config.yaml in the
// working directory and ./config; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Estimate.SimpleThresholdC != 12 && c.Estimate.SimpleThresholdC != 15 {
		return fmt.Errorf("estimate.simple_threshold_c must be 12 or 15, got %v", c.Estimate.SimpleThresholdC)
	}
	if c.Estimate.HotWaterPowerW < 0 {
		return fmt.Errorf("estimate.hot_water_power_w must not be negative, got %v", c.Estimate.HotWaterPowerW)
	}
	if c.Simulate.Parallelism < 0 {
		return fmt.Errorf("simulate.parallelism must not be negative, got %d", c.Simulate.Parallelism)
	}
	return nil
}
