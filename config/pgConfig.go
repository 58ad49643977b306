package config

import (
	"fmt"
)

type DbConfig interface {
	GetConnectionString() string
}

// PostgresConfig represents the configuration needed to connect to a PostgreSQL database
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

func (pc *PostgresConfig) GetConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

func (pc *PostgresConfig) applyEnv() {
	pc.Host = getEnv("POSTGRES_HOST", defaulted(pc.Host, "localhost"))
	pc.Port = getEnv("POSTGRES_PORT", defaulted(pc.Port, "5432"))
	pc.User = getEnv("POSTGRES_USER", defaulted(pc.User, "postgres"))
	pc.Password = getEnv("POSTGRES_PASSWORD", defaulted(pc.Password, "postgres"))
	pc.DBName = getEnv("POSTGRES_NAME", defaulted(pc.DBName, "postgres"))
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
