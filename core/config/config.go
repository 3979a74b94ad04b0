package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"race-importer/core/database"
	"race-importer/core/logger"
	"race-importer/core/server"
	"race-importer/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates the partial configurations of every subsystem.
// Each section is owned by the package that consumes it.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the batch object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the results database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig reads configuration from the environment, overlaid on the
// defaults declared in each section's struct tags. A .env file in path,
// when present, is loaded first; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")

	// SERVER_PORT -> server.port etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// registerDefaults walks the config struct and registers every leaf key
// with its `default` tag value. Keys must be registered (even empty) for
// AutomaticEnv to pick up the corresponding environment variables.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for _, field := range reflect.VisibleFields(t) {
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
