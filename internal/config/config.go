package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Config holds the CLI configuration
type Config struct {
	ClientID      string `json:"client_id,omitempty"`
	ClientSecret  string `json:"client_secret,omitempty"`
	DefaultOutput string `json:"default_output,omitempty"`
	Concurrency   int    `json:"concurrency,omitempty"`
}

// Load reads config from the XDG path, returns defaults if the file
// doesn't exist.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to the XDG config path
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Plain JSON is valid JSON5, so writing never needs the json5 encoder.
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config may hold OAuth client secrets; keep it private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// fieldByKey resolves a json tag name to the matching struct field.
func (c *Config) fieldByKey(key string) (reflect.Value, bool) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		jsonTag := t.Field(i).Tag.Get("json")
		if jsonTag == key || jsonTag == key+",omitempty" {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	field, ok := c.fieldByKey(key)
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return fmt.Sprintf("%v", field.Interface()), nil
}

// Set sets a config value by key name and saves
func (c *Config) Set(key, value string) error {
	if err := c.assign(key, value); err != nil {
		return err
	}
	return c.Save()
}

// Unset resets a config value to its zero value and saves
func (c *Config) Unset(key string) error {
	field, ok := c.fieldByKey(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	field.SetZero()
	return c.Save()
}

// assign parses and stores a value without saving.
func (c *Config) assign(key, value string) error {
	field, ok := c.fieldByKey(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config key %s requires an integer: %w", key, err)
		}
		field.SetInt(int64(n))
	default:
		return fmt.Errorf("config key %s has unsupported type %s", key, field.Kind())
	}
	return nil
}

// Keys returns the recognized config key names in declaration order.
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if tag != "" {
			keys = append(keys, tag)
		}
	}
	return keys
}
