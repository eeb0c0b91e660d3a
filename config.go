package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/database"
	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
)

// Config holds all configuration for the service.
type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	SNSTopicARN      string
	JWTSecret        string
}

// DatabaseConfig builds the connection settings for the database package.
func (c *Config) DatabaseConfig() database.ConnectConfig {
	return database.ConnectConfig{
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		Name:     c.PostgresDB,
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		SSLMode:  c.PostgresSSLMode,
		TimeZone: c.PostgresTimeZone,
	}
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8094"),
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "America/Toronto"),
		SNSTopicARN:      os.Getenv("SHIPMENT_SNS_TOPIC_ARN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}

	// Override DB credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			if dbjson, err := sm.GetSecret(context.Background(), "wingway/DB_CREDENTIALS"); err == nil && dbjson != "" {
				var m map[string]string
				if err := json.Unmarshal([]byte(dbjson), &m); err == nil {
					if v, ok := m["POSTGRES_USER"]; ok && v != "" {
						cfg.PostgresUser = v
					}
					if v, ok := m["POSTGRES_PASSWORD"]; ok && v != "" {
						cfg.PostgresPassword = v
					}
					if v, ok := m["POSTGRES_DB"]; ok && v != "" {
						cfg.PostgresDB = v
					}
					if v, ok := m["POSTGRES_HOST"]; ok && v != "" {
						cfg.PostgresHost = v
					}
					if v, ok := m["POSTGRES_PORT"]; ok && v != "" {
						cfg.PostgresPort = v
					}
				}
			}
			if v, err := sm.GetSecret(context.Background(), "wingway/JWT_SECRET"); err == nil && v != "" {
				cfg.JWTSecret = v
				// Auth middleware reads the secret from the environment.
				os.Setenv("JWT_SECRET", v)
			}
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
