package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type LoggingCfg struct {
	Level  string `mapstructure:"level"`
	RunLog string `mapstructure:"run_log"`
}

type InputCfg struct {
	Files []string `mapstructure:"files"`
	Since string   `mapstructure:"since"`
	Until string   `mapstructure:"until"`
}

type KafkaCfg struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type OutputCfg struct {
	Sink  string   `mapstructure:"sink"`
	File  string   `mapstructure:"file"`
	DSN   string   `mapstructure:"dsn"`
	Table string   `mapstructure:"table"`
	Kafka KafkaCfg `mapstructure:"kafka"`
}

type MetricsCfg struct {
	Textfile string `mapstructure:"textfile"`
}

type Config struct {
	Version string     `mapstructure:"version"`
	Input   InputCfg   `mapstructure:"input"`
	Output  OutputCfg  `mapstructure:"output"`
	Metrics MetricsCfg `mapstructure:"metrics"`
	Logging LoggingCfg `mapstructure:"logging"`
}

var cfg *Config

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("version", "0.1")
	v.SetDefault("output.sink", "stdout")
	v.SetDefault("output.table", "audit_normalized")
	v.SetDefault("output.kafka.topic", "auditnorm")
	v.SetDefault("logging.level", "info")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
