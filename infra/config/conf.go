package config

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CKey string

type Config struct {
	Validator *validator.Validate
	SecretKey string
}

// AppConfig represents the application configuration
type AppConfig struct {
	Port             string
	APIKey           string
	Environment      string
	MerchantAccount  string
	Username         string
	Password         string
	HMACKey          string
	SkinCode         string
	RequestTimeout   int
	CredentialDBPath string
}

var (
	instance          *Config
	appConfigInstance *AppConfig
)

func App() *Config {
	if instance == nil {
		instance = &Config{
			Validator: validator.New(),
			// the secret key will change every time the application is restarted.
			SecretKey: uuid.New().String(),
		}
	}
	return instance
}

// GetAppConfig returns the application configuration
func GetAppConfig() *AppConfig {
	if appConfigInstance == nil {
		appConfigInstance = &AppConfig{
			Port:             GetEnv("APP_PORT", "9999"),
			APIKey:           GetEnv("API_KEY", ""),
			Environment:      GetEnv("ADYEN_ENVIRONMENT", "test"),
			MerchantAccount:  GetEnv("ADYEN_MERCHANT_ACCOUNT", ""),
			Username:         GetEnv("ADYEN_USERNAME", ""),
			Password:         GetEnv("ADYEN_PASSWORD", ""),
			HMACKey:          GetEnv("ADYEN_HMAC_KEY", ""),
			SkinCode:         GetEnv("ADYEN_SKIN_CODE", ""),
			RequestTimeout:   GetIntEnv("ADYEN_REQUEST_TIMEOUT", 30),
			CredentialDBPath: GetEnv("CREDENTIAL_DB_PATH", "./data/credentials.db"),
		}
	}
	return appConfigInstance
}

// EndpointOverrides collects ADYEN_URL_<ALIAS> environment overrides for the
// client URL registry. Aliases are looked up as given, uppercased in the
// environment key.
func EndpointOverrides(aliases []string) map[string]string {
	overrides := make(map[string]string)
	for _, alias := range aliases {
		if url := os.Getenv("ADYEN_URL_" + envKey(alias)); url != "" {
			overrides[alias] = url
		}
	}
	return overrides
}

func envKey(alias string) string {
	out := make([]byte, 0, len(alias))
	for i := 0; i < len(alias); i++ {
		c := alias[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// getEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv returns the boolean value of an environment variable or a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv returns the integer value of an environment variable or a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func RandomString(length int) string {
	var charset = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
