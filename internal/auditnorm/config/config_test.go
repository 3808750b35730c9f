package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := Get()
	if cfg.Version != "0.1" {
		t.Errorf("default Version = %v, want 0.1", cfg.Version)
	}
	if cfg.Output.Sink != "stdout" {
		t.Errorf("default Sink = %v, want stdout", cfg.Output.Sink)
	}
	if cfg.Output.Table != "audit_normalized" {
		t.Errorf("default Table = %v, want audit_normalized", cfg.Output.Table)
	}
	if cfg.Output.Kafka.Topic != "auditnorm" {
		t.Errorf("default Topic = %v, want auditnorm", cfg.Output.Kafka.Topic)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Level = %v, want info", cfg.Logging.Level)
	}
	if len(cfg.Input.Files) != 0 {
		t.Errorf("default Files = %v, want none", cfg.Input.Files)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	v := viper.New()
	v.Set("version", "0.2")
	v.Set("input.files", []string{"/var/log/audit/audit.log", "/var/log/audit/audit.log.1"})
	v.Set("input.since", "2024-01-01T00:00:00Z")
	v.Set("input.until", "2024-01-02T00:00:00Z")
	v.Set("output.sink", "postgres")
	v.Set("output.file", "./out.log")
	v.Set("output.dsn", "postgres://audit@localhost/audit?sslmode=disable")
	v.Set("output.table", "records")
	v.Set("output.kafka.brokers", []string{"k1:9092", "k2:9092"})
	v.Set("output.kafka.topic", "audit")
	v.Set("metrics.textfile", "./auditnorm.prom")
	v.Set("logging.level", "debug")
	v.Set("logging.run_log", "./run.jsonl")

	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := Get()

	if cfg.Version != "0.2" {
		t.Errorf("Version = %v, want 0.2", cfg.Version)
	}

	// Input
	if len(cfg.Input.Files) != 2 || cfg.Input.Files[1] != "/var/log/audit/audit.log.1" {
		t.Errorf("Files = %v", cfg.Input.Files)
	}
	if cfg.Input.Since != "2024-01-01T00:00:00Z" {
		t.Errorf("Since = %v", cfg.Input.Since)
	}
	if cfg.Input.Until != "2024-01-02T00:00:00Z" {
		t.Errorf("Until = %v", cfg.Input.Until)
	}

	// Output
	if cfg.Output.Sink != "postgres" {
		t.Errorf("Sink = %v, want postgres", cfg.Output.Sink)
	}
	if cfg.Output.File != "./out.log" {
		t.Errorf("File = %v, want ./out.log", cfg.Output.File)
	}
	if cfg.Output.DSN != "postgres://audit@localhost/audit?sslmode=disable" {
		t.Errorf("DSN = %v", cfg.Output.DSN)
	}
	if cfg.Output.Table != "records" {
		t.Errorf("Table = %v, want records", cfg.Output.Table)
	}
	if len(cfg.Output.Kafka.Brokers) != 2 {
		t.Errorf("Brokers = %v", cfg.Output.Kafka.Brokers)
	}
	if cfg.Output.Kafka.Topic != "audit" {
		t.Errorf("Topic = %v, want audit", cfg.Output.Kafka.Topic)
	}

	// Metrics
	if cfg.Metrics.Textfile != "./auditnorm.prom" {
		t.Errorf("Textfile = %v", cfg.Metrics.Textfile)
	}

	// Logging
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.RunLog != "./run.jsonl" {
		t.Errorf("RunLog = %v, want ./run.jsonl", cfg.Logging.RunLog)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	v := viper.New()
	v.Set("output.kafka", "not-a-table")

	if err := Load(v); err == nil {
		t.Error("Load() error = nil, want error for invalid config")
	}
}

func TestGet_NilConfig(t *testing.T) {
	// Reset global config
	cfg = nil

	c := Get()
	if c == nil {
		t.Fatal("Get() = nil, want empty config")
	}
	if c.Version != "" {
		t.Errorf("Version = %v, want empty string", c.Version)
	}
}

func TestGet_Singleton(t *testing.T) {
	cfg = nil

	c1 := Get()
	c2 := Get()
	if c2 != c1 {
		t.Error("Get() returned different instances")
	}
}
