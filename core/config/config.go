package config

import (
	"reflect"
	"strings"

	"contentsync/core/database"
	"contentsync/core/logger"
	"contentsync/core/server"
	"contentsync/core/source/rest"
	"contentsync/core/source/sheets"
	"contentsync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SyncConfig holds the schedules for the periodic sync runs.
type SyncConfig struct {
	// FullSpec is the cron schedule of the full reconciliation.
	FullSpec string `mapstructure:"full_spec" default:"0 4 * * *"`
	// AvailabilitySpec is the cron schedule of the availability refresh.
	AvailabilitySpec string `mapstructure:"availability_spec" default:"0 * * * *"`
}

// OrganizationsConfig holds settings for the organizations feature.
type OrganizationsConfig struct {
	// Enabled toggles the feature.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Container is the store container for organization entities.
	Container string `mapstructure:"container" default:"organizations"`
	// Language is the content language of created entities.
	Language string `mapstructure:"language" default:"en"`
	// Source holds the REST API connection details.
	Source rest.Config `mapstructure:"source"`
}

// PersonsConfig holds settings for the persons feature.
type PersonsConfig struct {
	// Enabled toggles the feature.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Container is the store container for person entities.
	Container string `mapstructure:"container" default:"team"`
	// Language is the content language of created entities.
	Language string `mapstructure:"language" default:"en"`
	// Source holds the spreadsheet connection details.
	Source sheets.Config `mapstructure:"source"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Sync holds the periodic run schedules.
	Sync SyncConfig `mapstructure:"sync"`
	// Organizations holds the organizations feature settings.
	Organizations OrganizationsConfig `mapstructure:"organizations"`
	// Persons holds the persons feature settings.
	Persons PersonsConfig `mapstructure:"persons"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
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

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
