package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Load loads the configuration from the given file, or from the default
// search locations when no file is specified. Environment variables with
// the TEACHFORGE_ prefix override file values.
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	if err := setupViperConfig(v, configFile); err != nil {
		return nil, err
	}

	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a config with only the defaults applied.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logrus.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		// .env file not found, that's okay - continue with other sources
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}
	return nil
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) error {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/teachforge")

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	if err := setupHomeConfigPath(v); err != nil {
		return err
	}

	setDefaults(v)

	v.SetEnvPrefix("TEACHFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	return nil
}

// setupHomeConfigPath adds the home directory config path if available
func setupHomeConfigPath(v *viper.Viper) error {
	if len(os.Getenv("HOME")) == 0 {
		return nil
	}

	usr, err := user.Current()
	if err != nil {
		logrus.Errorf("Failed to get current user: %v", err)
		return nil
	}

	configPath := filepath.Join(usr.HomeDir, ".config", "teachforge")
	v.AddConfigPath(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configPath, os.ModePerm); err != nil {
			logrus.Errorf("Failed to create config directory: %v", err)
		}
	}

	return nil
}

// bindEnvironmentVariables binds all environment variables to viper
func bindEnvironmentVariables(v *viper.Viper) {
	v.BindEnv("api.endpoint", "TEACHFORGE_ENDPOINT")
	v.BindEnv("api.endpoint", "TEACHFORGE_BASE_URL")
	v.BindEnv("api.timeout", "TEACHFORGE_API_TIMEOUT")
	v.BindEnv("api.generate_timeout", "TEACHFORGE_API_GENERATE_TIMEOUT")

	v.BindEnv("polling.interval", "TEACHFORGE_POLLING_INTERVAL")
	v.BindEnv("polling.max_attempts", "TEACHFORGE_POLLING_MAX_ATTEMPTS")

	v.BindEnv("logging.level", "TEACHFORGE_LOGGING_LEVEL")
	v.BindEnv("logging.format", "TEACHFORGE_LOGGING_FORMAT")
}

// readAndUnmarshalConfig reads the config file and unmarshals it. A missing
// config file is fine; defaults and environment variables still apply.
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", 60*time.Second)
	v.SetDefault("api.generate_timeout", 120*time.Second)

	v.SetDefault("polling.interval", 2*time.Second)
	v.SetDefault("polling.retry_interval", 5*time.Second)
	v.SetDefault("polling.max_attempts", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// setupLogging configures the logging system based on the config
func setupLogging(config *Config) error {
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	default:
		return fmt.Errorf("unknown logging format: %s", config.Logging.Format)
	}

	return nil
}
