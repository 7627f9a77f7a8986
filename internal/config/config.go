// Package config loads runtime configuration for the fmu-settings API
// from config files and environment variables via Viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/equinor/fmu-settings-api/internal/server"
	"github.com/equinor/fmu-settings-api/pkg/errors"
)

// envPrefix namespaces the environment variables read by Viper
// (e.g. FMU_SETTINGS_PORT).
const envPrefix = "FMU_SETTINGS"

// Load builds the server configuration from defaults, an optional
// config file, and environment overrides.
func Load(configFile string) (server.Config, error) {
	v := viper.New()

	defaults := server.DefaultConfig()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("path_prefix", defaults.PathPrefix)
	v.SetDefault("cors_enabled", defaults.CORSEnabled)
	v.SetDefault("cors_origins", defaults.CORSOrigins)
	v.SetDefault("auth_enabled", defaults.AuthEnabled)
	v.SetDefault("auth_header", defaults.AuthHeader)
	v.SetDefault("session_ttl", defaults.SessionTTL)
	v.SetDefault("rate_limit", defaults.RateLimit)
	v.SetDefault("cache_ttl", defaults.CacheTTL)
	v.SetDefault("read_timeout", defaults.ReadTimeout)
	v.SetDefault("write_timeout", defaults.WriteTimeout)
	v.SetDefault("idle_timeout", defaults.IdleTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return server.Config{}, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	}

	cfg := server.Config{
		Host:         v.GetString("host"),
		Port:         v.GetInt("port"),
		PathPrefix:   v.GetString("path_prefix"),
		CORSEnabled:  v.GetBool("cors_enabled"),
		CORSOrigins:  v.GetStringSlice("cors_origins"),
		AuthEnabled:  v.GetBool("auth_enabled"),
		AuthHeader:   v.GetString("auth_header"),
		SessionTTL:   v.GetDuration("session_ttl"),
		RateLimit:    v.GetInt("rate_limit"),
		CacheTTL:     v.GetDuration("cache_ttl"),
		ReadTimeout:  v.GetDuration("read_timeout"),
		WriteTimeout: v.GetDuration("write_timeout"),
		IdleTimeout:  v.GetDuration("idle_timeout"),
	}
	return cfg, nil
}

// GetString is a helper to get string values from the environment with
// the config prefix, falling back to the bare variable name.
func GetString(key string) string {
	if value := os.Getenv(envPrefix + "_" + strings.ToUpper(key)); value != "" {
		return value
	}
	return os.Getenv(strings.ToUpper(key))
}
