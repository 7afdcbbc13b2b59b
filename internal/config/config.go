package config

import (
	"crypto/rsa"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env            string
	Port           string
	BackendURL     string
	RequestTimeout time.Duration

	RedisAddress  string
	RedisPassword string
	SessionKey    string

	// JWTPublicKey is optional. Without it session tokens are read but
	// not verified.
	JWTPublicKey *rsa.PublicKey

	RabbitMQURL    string
	EventQueueName string

	AssetOrigin    string
	AssetVersion   string
	AllowedOrigins []string

	DemoMode     bool
	DemoEmail    string
	DemoPassword string
}

func Load() *Config {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		panic("BACKEND_URL environment variable is required")
	}

	cfg := &Config{
		Env:            getenv("APP_ENV", "production"),
		Port:           getenv("PORT", "8080"),
		BackendURL:     backendURL,
		RequestTimeout: durationEnv("REQUEST_TIMEOUT", 10*time.Second),
		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SessionKey:     getenv("SESSION_KEY", "hotel:session"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		EventQueueName: getenv("EVENT_QUEUE_NAME", "hotel.actions"),
		AssetOrigin:    os.Getenv("ASSET_ORIGIN"),
		AssetVersion:   getenv("ASSET_CACHE_VERSION", "v1"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "*")),
		DemoMode:       boolEnv("DEMO_MODE", false),
		DemoEmail:      getenv("DEMO_EMAIL", "demo@hotel.example"),
		DemoPassword:   getenv("DEMO_PASSWORD", "demo"),
	}

	if path := os.Getenv("JWT_PUBLIC_KEY_PATH"); path != "" {
		publicKey, err := loadPublicKey(path)
		if err != nil {
			panic("Failed to load public key: " + err.Error())
		}
		cfg.JWTPublicKey = publicKey
	}

	return cfg
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyData)
	if err != nil {
		return nil, err
	}
	return publicKey, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		panic(key + " must be a positive duration, got " + strconv.Quote(v))
	}
	return d
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(key + " must be a boolean, got " + strconv.Quote(v))
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
