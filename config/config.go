// Package config has the configuration file for the app
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// OCR provider names accepted in OCR_PROVIDER.
const (
	OCRProviderTesseract = "tesseract"
	OCRProviderVision    = "vision"
)

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
	MaxRequestBody    int64 // Maximum upload/request body size in bytes
	MaxHeaderSize     int64 // Maximum total request header size in bytes

	CatalogPath    string // Path to the substance CSV
	CatalogRefresh bool   // Reload the catalog on the daily schedule

	OCRProvider  string // tesseract or vision
	TesseractCmd string // Tesseract binary path override
	OCRLanguage  string // Tesseract/Vision language code

	OpenAIKey   string        // Empty disables the AI stages
	OpenAIModel string        // Chat model for extraction and summaries
	AITimeout   time.Duration // Per-call timeout for AI requests
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	aiTimeout, err := getDurationEnvWithDefault("AI_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid AI_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               getEnvWithDefault("ENV", "dev"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MaxLogFileSize:    getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 104857600), // 100MB default
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 10485760),  // 10MB default
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),    // 1MB default
		CatalogPath:       getEnvWithDefault("CATALOG_PATH", "sustancias.csv"),
		CatalogRefresh:    getEnvWithDefault("CATALOG_REFRESH", "false") == "true",
		OCRProvider:       strings.ToLower(getEnvWithDefault("OCR_PROVIDER", OCRProviderTesseract)),
		TesseractCmd:      getEnvWithDefault("TESSERACT_CMD", "tesseract"),
		OCRLanguage:       getEnvWithDefault("OCR_LANG", "spa"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:         aiTimeout,
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// AIEnabled reports whether the AI-backed stages are configured. A missing
// credential is not an error, extraction and summarization degrade to their
// fallbacks.
func (c *Config) AIEnabled() bool {
	return c.OpenAIKey != ""
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

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	if err := validateOCRProvider(cfg.OCRProvider); err != nil {
		return fmt.Errorf("invalid OCR_PROVIDER: %w", err)
	}

	if err := validateOCRLanguage(cfg.OCRLanguage); err != nil {
		return fmt.Errorf("invalid OCR_LANG: %w", err)
	}

	if err := validateAITimeout(cfg.AITimeout); err != nil {
		return fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}

	if strings.TrimSpace(cfg.CatalogPath) == "" {
		return fmt.Errorf("invalid CATALOG_PATH: cannot be empty")
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

	// Check for privileged ports
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

	// Localhost/loopback is acceptable for development
	if address == "127.0.0.1" || address == "::1" || address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	if !ip.IsLoopback() && !ip.IsPrivate() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env string) error {
	if env == "" {
		return fmt.Errorf("ENV cannot be empty")
	}

	validEnvs := []string{"dev", "staging", "prod", "test"}
	env = strings.ToLower(env)

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
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateSizeLimit validates size limit configuration values
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 { // 1 year maximum
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
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

// validateOCRProvider validates the OCR_PROVIDER environment variable
func validateOCRProvider(provider string) error {
	if provider == OCRProviderTesseract || provider == OCRProviderVision {
		return nil
	}
	return fmt.Errorf("OCR_PROVIDER must be one of: [%s %s], got: %s",
		OCRProviderTesseract, OCRProviderVision, provider)
}

// validateOCRLanguage validates the OCR_LANG environment variable
func validateOCRLanguage(lang string) error {
	if lang == "" {
		return fmt.Errorf("OCR_LANG cannot be empty")
	}

	for _, r := range lang {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '_' && r != '-' && r != '+' {
			return fmt.Errorf("OCR_LANG contains invalid characters, got: %s", lang)
		}
	}

	return nil
}

// validateAITimeout validates the AI_TIMEOUT environment variable
func validateAITimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got: %s", timeout)
	}

	if timeout > 5*time.Minute {
		return fmt.Errorf("AI_TIMEOUT is too large (max 5m), got: %s", timeout)
	}

	return nil
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

// getDurationEnvWithDefault gets an environment variable as a duration with a
// default value. Unlike the other getters a malformed value is an error, a
// silently ignored timeout is too surprising.
func getDurationEnvWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like '30s': %w", key, err)
	}
	return d, nil
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"CATALOG_PATH",
		"CATALOG_REFRESH",
		"OCR_PROVIDER",
		"TESSERACT_CMD",
		"OCR_LANG",
		"OPENAI_API_KEY",
		"OPENAI_MODEL",
		"AI_TIMEOUT",
	}
}
