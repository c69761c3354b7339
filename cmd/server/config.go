package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/limaJavier/labscheduling/pkg/model"
	"go.uber.org/zap"
)

type Config struct {
	Port         string
	WeekConfig   string // Optional YAML week shape
	CoursesFile  string // Optional roster seeding the registry
	BaseWeekDate int
	LogLevel     string
}

// LoadConfig reads the service configuration from the environment, loading a .env file first when one exists
func LoadConfig() (Config, error) {
	dotenvErr := godotenv.Load()

	baseWeekDate, err := strconv.Atoi(GetEnv("BASE_WEEK_DATE", strconv.Itoa(model.DefaultBaseWeekDate)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BASE_WEEK_DATE: %w", err)
	}

	config := Config{
		Port:         GetEnv("PORT", "3000"),
		WeekConfig:   GetEnv("WEEK_CONFIG"),
		CoursesFile:  GetEnv("COURSES_FILE"),
		BaseWeekDate: baseWeekDate,
		LogLevel:     GetEnv("LOG_LEVEL", "info"),
	}
	if dotenvErr != nil && !os.IsNotExist(dotenvErr) {
		return config, fmt.Errorf("cannot load .env file: %w", dotenvErr)
	}
	return config, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = atomicLevel
	return config.Build()
}
