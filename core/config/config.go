package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"asset-diff/core/database"
	"asset-diff/core/logger"
	"asset-diff/core/server"
	"asset-diff/core/storage"
	"asset-diff/feature/merge"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage holding documents.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the merge history database.
	Database database.Config `mapstructure:"database"`
	// Merge holds configuration for the merge feature.
	Merge merge.Config `mapstructure:"merge"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MERGE_CACHE_TTL_SECONDS -> merge.cache_ttl_seconds)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings that would only fail later at startup.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q: expected json or console", c.Log.Format)
	}

	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("invalid database driver %q: expected %s or %s", c.Database.Driver, database.DriverMySQL, database.DriverSQLite)
	}

	if c.Merge.MaxDocumentBytes <= 0 {
		return fmt.Errorf("merge.max_document_bytes must be positive, got %d", c.Merge.MaxDocumentBytes)
	}
	if c.Server.BodyLimitBytes > 0 && int64(c.Server.BodyLimitBytes) < c.Merge.MaxDocumentBytes {
		return fmt.Errorf("server.body_limit_bytes (%d) is smaller than merge.max_document_bytes (%d)",
			c.Server.BodyLimitBytes, c.Merge.MaxDocumentBytes)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
