// Package config has the configuration for the reminder service
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment names accepted by ENV
const (
	EnvDevelopment = "dev"
	EnvStaging     = "staging"
	EnvProduction  = "prod"
	EnvTest        = "test"
)

// Push providers accepted by PUSH_PROVIDER
const (
	PushProviderLog       = "log"
	PushProviderOneSignal = "onesignal"
	PushProviderTelegram  = "telegram"
)

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
	MaxRequestBody    int64 // Maximum request body size in bytes
	MaxHeaderSize     int64 // Maximum header size in bytes

	Timezone        string        // IANA zone used to read schedule times
	TickInterval    time.Duration // How often the monitor runs
	NotificationTTL time.Duration // How long a notification stays on the board
	DatasetFile     string        // Optional YAML dataset; embedded defaults when empty

	Push PushConfig
}

// PushConfig selects and configures the mobile push provider
type PushConfig struct {
	Provider   string
	Timeout    time.Duration
	RatePerSec int

	OneSignalAppID          string
	OneSignalAPIKey         string
	OneSignalSubscriptionID string
	OneSignalBaseURL        string

	TelegramBotToken string
	TelegramChatID   int64
}

// Location resolves Timezone, "Local" meaning the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               strings.ToLower(getEnvWithDefault("ENV", EnvDevelopment)),
		LogLevel:          strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		LogDir:            getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),         // 4 weeks default
		MaxLogFileSize:    getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 104857600), // 100MB default
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 65536),      // 64KB default
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),     // 1MB default

		Timezone:        getEnvWithDefault("TIMEZONE", "Local"),
		TickInterval:    getDurationEnvWithDefault("TICK_INTERVAL", time.Minute),
		NotificationTTL: getDurationEnvWithDefault("NOTIFICATION_TTL", 30*time.Second),
		DatasetFile:     os.Getenv("DATASET_FILE"),

		Push: PushConfig{
			Provider:                strings.ToLower(getEnvWithDefault("PUSH_PROVIDER", PushProviderLog)),
			Timeout:                 getDurationEnvWithDefault("PUSH_TIMEOUT", 10*time.Second),
			RatePerSec:              getIntEnvWithDefault("PUSH_RATE_PER_SEC", 3),
			OneSignalAppID:          os.Getenv("ONESIGNAL_APP_ID"),
			OneSignalAPIKey:         os.Getenv("ONESIGNAL_API_KEY"),
			OneSignalSubscriptionID: os.Getenv("ONESIGNAL_SUBSCRIPTION_ID"),
			OneSignalBaseURL:        getEnvWithDefault("ONESIGNAL_BASE_URL", "https://onesignal.com/api/v1"),
			TelegramBotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
			TelegramChatID:          getInt64EnvWithDefault("TELEGRAM_CHAT_ID", 0),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if err := validateDurationRange(cfg.TickInterval, time.Second, time.Hour, "TICK_INTERVAL"); err != nil {
		return fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}

	if err := validateDurationRange(cfg.NotificationTTL, time.Second, 24*time.Hour, "NOTIFICATION_TTL"); err != nil {
		return fmt.Errorf("invalid NOTIFICATION_TTL: %w", err)
	}

	if err := validatePush(&cfg.Push); err != nil {
		return fmt.Errorf("invalid push configuration: %w", err)
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	// The service has no authentication, keep it off public interfaces
	if !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() {
		return fmt.Errorf("ADDRESS %s is a public IP, use a loopback or private address", address)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env string) error {
	if env == "" {
		return fmt.Errorf("ENV cannot be empty")
	}

	validEnvs := []string{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}
	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 {
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateSizeLimit validates request size limits
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateMaxLogFileSize validates the MAX_LOG_FILE_SIZE environment variable
func validateMaxLogFileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE must be positive, got: %d", size)
	}

	// Minimum 1MB, maximum 1GB
	if size < 1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too small (min 1MB), got: %d bytes", size)
	}

	if size > 1024*1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too large (max 1GB), got: %d bytes", size)
	}

	return nil
}

// validateDurationRange checks min <= d <= max
func validateDurationRange(d, min, max time.Duration, configName string) error {
	if d < min {
		return fmt.Errorf("%s must be at least %s, got: %s", configName, min, d)
	}
	if d > max {
		return fmt.Errorf("%s must be at most %s, got: %s", configName, max, d)
	}
	return nil
}

// validatePush checks that the selected provider has what it needs
func validatePush(p *PushConfig) error {
	if p.RatePerSec <= 0 {
		return fmt.Errorf("PUSH_RATE_PER_SEC must be positive, got: %d", p.RatePerSec)
	}

	if err := validateDurationRange(p.Timeout, 100*time.Millisecond, time.Minute, "PUSH_TIMEOUT"); err != nil {
		return err
	}

	switch p.Provider {
	case PushProviderLog:
		return nil
	case PushProviderOneSignal:
		var missing []string
		if p.OneSignalAppID == "" {
			missing = append(missing, "ONESIGNAL_APP_ID")
		}
		if p.OneSignalAPIKey == "" {
			missing = append(missing, "ONESIGNAL_API_KEY")
		}
		if p.OneSignalSubscriptionID == "" {
			missing = append(missing, "ONESIGNAL_SUBSCRIPTION_ID")
		}
		if len(missing) > 0 {
			return fmt.Errorf("onesignal provider requires: %v", missing)
		}
		return nil
	case PushProviderTelegram:
		if p.TelegramBotToken == "" || p.TelegramChatID == 0 {
			return fmt.Errorf("telegram provider requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		}
		return nil
	}

	return fmt.Errorf("PUSH_PROVIDER must be one of: %v, got: %s",
		[]string{PushProviderLog, PushProviderOneSignal, PushProviderTelegram}, p.Provider)
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64EnvWithDefault gets an environment variable as int64 with a default value
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnvWithDefault accepts Go durations ("45s") or plain seconds ("45")
func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"TIMEZONE",
		"TICK_INTERVAL",
		"NOTIFICATION_TTL",
		"DATASET_FILE",
		"PUSH_PROVIDER",
		"PUSH_TIMEOUT",
		"PUSH_RATE_PER_SEC",
		"ONESIGNAL_APP_ID",
		"ONESIGNAL_API_KEY",
		"ONESIGNAL_SUBSCRIPTION_ID",
		"ONESIGNAL_BASE_URL",
		"TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID",
	}
}
