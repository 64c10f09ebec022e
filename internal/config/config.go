package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/corray333/tutti-amici/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Driver names accepted by database.driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// MustInit loads .env and config.yaml when present, binds environment
// variables and installs the default logger.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}

	SetDefaults()
	MustBindEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/tutti-amici")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic("error while reading config file: " + err.Error())
		}
	}

	SetupLogger()
}

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("server.http.port", "8000")
	viper.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.http.cors.allowed_methods", []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions,
	})
	viper.SetDefault("server.http.cors.allowed_headers", []string{"*"})
	viper.SetDefault("server.http.cors.exposed_headers", []string{})
	viper.SetDefault("server.http.cors.allow_credentials", true)
	viper.SetDefault("server.http.cors.max_age", 300)
	viper.SetDefault("server.http.shutdown_timeout", "10s")

	viper.SetDefault("database.driver", DriverMongo)
	viper.SetDefault("database.timeout", "10s")

	viper.SetDefault("diagnostics.timeout", "5s")

	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.queue", "tutti.order.created")

	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.service_name", "tutti-amici")
	viper.SetDefault("tracing.jaeger_endpoint", "http://jaeger:14268/api/traces")

	viper.SetDefault("log.level", "info")
}

// MustBindEnv maps configuration keys to their environment variables.
func MustBindEnv() {
	bindings := map[string]string{
		"server.http.port":        "PORT",
		"database.url":            "DATABASE_URL",
		"database.name":           "DATABASE_NAME",
		"database.driver":         "DATABASE_DRIVER",
		"database.timeout":        "DATABASE_TIMEOUT",
		"rabbitmq.enabled":        "RABBITMQ_ENABLED",
		"rabbitmq.url":            "RABBITMQ_URL",
		"rabbitmq.queue":          "RABBITMQ_QUEUE",
		"tracing.enabled":         "TRACING_ENABLED",
		"tracing.jaeger_endpoint": "TRACING_JAEGER_ENDPOINT",
		"log.level":               "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			panic("error while binding env " + env + ": " + err.Error())
		}
	}
}

func SetupLogger() {
	handler := logger.NewHandler(&slog.HandlerOptions{
		Level: logger.ParseLevel(viper.GetString("log.level")),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}
