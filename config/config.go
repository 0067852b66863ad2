package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream booking backend.
	UpstreamBaseURL    string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeoutSec int    `mapstructure:"UPSTREAM_TIMEOUT_SEC"`

	// Display timezone for slot labels, minutes east of UTC.
	DisplayTZOffsetMin int `mapstructure:"DISPLAY_TZ_OFFSET_MIN"`

	// Flat per-service delivery fee for unlimited-capacity services.
	DeliveryFee float64 `mapstructure:"DELIVERY_FEE"`

	// Mongo configuration.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCartDB       int    `mapstructure:"REDIS_CART_DB"`
	RedisIdemDB       int    `mapstructure:"REDIS_IDEMPOTENCY_DB"`
	RedisSweepQueueDB int    `mapstructure:"REDIS_SWEEP_QUEUE_DB"`

	// Cart sweeper interval in minutes.
	CartSweepIntervalMin int `mapstructure:"CART_SWEEP_INTERVAL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("UPSTREAM_BASE_URL", "https://api.masarra.app")
	viper.SetDefault("UPSTREAM_TIMEOUT_SEC", 15)
	viper.SetDefault("DISPLAY_TZ_OFFSET_MIN", 180)
	viper.SetDefault("DELIVERY_FEE", 5.0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CART_DB", 0)
	viper.SetDefault("REDIS_IDEMPOTENCY_DB", 1)
	viper.SetDefault("REDIS_SWEEP_QUEUE_DB", 2)
	viper.SetDefault("CART_SWEEP_INTERVAL_MIN", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
