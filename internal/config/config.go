package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caucashanus/rezervacni-system/internal/locations"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Google   GoogleConfig
	Cache    CacheConfig
	Admin    AdminConfig
	Timezone *time.Location
}

type ServerConfig struct {
	Port           int
	HandlerTimeout time.Duration
}

type GoogleConfig struct {
	// KeyDir holds one service-account key file per location,
	// named <location>.json.
	KeyDir       string
	QueryTimeout time.Duration
	AllowPartial bool
}

type CacheConfig struct {
	TTL time.Duration
}

type AdminConfig struct {
	// Tokens maps location id to its admin token. Every configured
	// location has an entry after Load.
	Tokens map[string]string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		return nil, fmt.Errorf("missing env ADMIN_TOKEN")
	}

	tokens := make(map[string]string)
	for _, id := range locations.IDs() {
		tokens[id] = GetEnv("ADMIN_TOKEN_"+strings.ToUpper(id), adminToken).(string)
	}

	tzName := GetEnv("TIMEZONE", "Europe/Prague").(string)
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           GetEnv("PORT", 8080).(int),
			HandlerTimeout: GetEnv("HANDLER_TIMEOUT", 30*time.Second).(time.Duration),
		},
		Google: GoogleConfig{
			KeyDir:       GetEnv("GOOGLE_KEY_DIR", "accounts").(string),
			QueryTimeout: GetEnv("QUERY_TIMEOUT", 15*time.Second).(time.Duration),
			AllowPartial: GetEnv("ALLOW_PARTIAL", false).(bool),
		},
		Cache: CacheConfig{
			TTL: GetEnv("CACHE_TTL", 5*time.Second).(time.Duration),
		},
		Admin: AdminConfig{
			Tokens: tokens,
		},
		Timezone: tz,
	}

	return cfg, nil
}

func GetEnv(key string, defaultValue any) any {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	switch def := defaultValue.(type) {
	case string:
		return value
	case int:
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		return def
	case bool:
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		return def
	case time.Duration:
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
		return def
	default:
		panic(fmt.Sprintf("unsupported type %T", defaultValue))
	}
}
