// Package config loads the service configuration from a YAML file, with
// every key overridable by an environment variable of the same name.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the service looks for its YAML file.
const DefaultPath = "internal/biztime/config/config.yaml"

// Config struct for YAML configuration
type Config struct {
	HTTPPort       int           `yaml:"HTTP_PORT"`
	GRPCPort       int           `yaml:"GRPC_PORT"`
	DBDriver       string        `yaml:"DB_DRIVER"`
	DBHost         string        `yaml:"DB_HOST"`
	DBPort         int           `yaml:"DB_PORT"`
	DBUser         string        `yaml:"DB_USER"`
	DBPassword     string        `yaml:"DB_PASSWORD"`
	DBName         string        `yaml:"DB_NAME"`
	DBSSLMode      string        `yaml:"DB_SSLMODE"`
	DBPath         string        `yaml:"DB_PATH"`
	DBDebug        bool          `yaml:"DB_DEBUG"`
	AutoMigrate    bool          `yaml:"AUTO_MIGRATE"`
	KafkaBrokers   []string      `yaml:"KAFKA_BROKERS"`
	Topic          string        `yaml:"TOPIC"`
	LogDevelopment bool          `yaml:"LOG_DEVELOPMENT"`
	HealthInterval time.Duration `yaml:"HEALTH_INTERVAL"`
}

// Default returns the configuration used when neither the file nor the
// environment set a key.
func Default() *Config {
	return &Config{
		HTTPPort:       3000,
		GRPCPort:       50051,
		DBDriver:       "postgres",
		DBHost:         "localhost",
		DBPort:         5432,
		DBUser:         "postgres",
		DBName:         "biztime",
		DBSSLMode:      "disable",
		AutoMigrate:    true,
		Topic:          "biztime.events",
		HealthInterval: 10 * time.Second,
	}
}

// Load reads the YAML file at path on top of Default, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for postgres")
		}
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.HTTPPort <= 0 || c.GRPCPort <= 0 {
		return fmt.Errorf("HTTP_PORT and GRPC_PORT must be positive")
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("HEALTH_INTERVAL must be positive")
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnv overrides every field whose yaml key is present in the environment.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		if err := setField(v.Field(i), strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
	}
	return nil
}

func setField(f reflect.Value, raw string) error {
	if f.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Slice:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		f.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind())
	}
	return nil
}
