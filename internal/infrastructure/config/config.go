package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	AutoCreateTables   bool
	Tables             Tables

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	AdminUsername string
	AdminPassword string
	AdminName     string

	CORSAllowedOrigins []string
	LoginRatePerSecond float64
	LoginRateBurst     int

	UnpaidCheckInterval time.Duration
	UnpaidGracePeriod   time.Duration
	PurgeInterval       time.Duration
	PurgeRetention      time.Duration
	SeedCountersOnStart bool

	MercadoPagoAccessToken   string
	MercadoPagoTestPayerMail string
	PaymentGatewayMock       bool
}

// Tables names every DynamoDB table the service uses.
type Tables struct {
	Orders        string
	Doctors       string
	Notifications string
	Counters      string
	Users         string
}

const insecureJWTSecret = "laboratorio-dental-dev-secret-change-me"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("DYNAMODB_AUTO_CREATE_TABLES", false)
	v.SetDefault("ORDERS_TABLE", "orders")
	v.SetDefault("DOCTORS_TABLE", "doctors")
	v.SetDefault("NOTIFICATIONS_TABLE", "notifications")
	v.SetDefault("COUNTERS_TABLE", "counters")
	v.SetDefault("USERS_TABLE", "users")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "laboratorio-dental")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_NAME", "Administrador")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_PER_SECOND", 1.0)
	v.SetDefault("LOGIN_RATE_BURST", 5)
	v.SetDefault("UNPAID_CHECK_INTERVAL", "24h")
	v.SetDefault("UNPAID_GRACE_PERIOD", "168h")
	v.SetDefault("PURGE_INTERVAL", "24h")
	v.SetDefault("PURGE_RETENTION", "8760h")
	v.SetDefault("SEED_COUNTERS_ON_START", true)
	v.SetDefault("MERCADOPAGO_ACCESS_TOKEN", "")
	v.SetDefault("MERCADOPAGO_TEST_PAYER_EMAIL", "")
	v.SetDefault("PAYMENT_GATEWAY_MOCK", false)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),
		AutoCreateTables:   v.GetBool("DYNAMODB_AUTO_CREATE_TABLES"),
		Tables: Tables{
			Orders:        v.GetString("ORDERS_TABLE"),
			Doctors:       v.GetString("DOCTORS_TABLE"),
			Notifications: v.GetString("NOTIFICATIONS_TABLE"),
			Counters:      v.GetString("COUNTERS_TABLE"),
			Users:         v.GetString("USERS_TABLE"),
		},
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		AdminUsername:          v.GetString("ADMIN_USERNAME"),
		AdminPassword:          v.GetString("ADMIN_PASSWORD"),
		AdminName:              v.GetString("ADMIN_NAME"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRatePerSecond:     v.GetFloat64("LOGIN_RATE_PER_SECOND"),
		LoginRateBurst:         v.GetInt("LOGIN_RATE_BURST"),
		SeedCountersOnStart:    v.GetBool("SEED_COUNTERS_ON_START"),
		MercadoPagoAccessToken: v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     v.GetBool("PAYMENT_GATEWAY_MOCK"),
	}
	cfg.MercadoPagoTestPayerMail = v.GetString("MERCADOPAGO_TEST_PAYER_EMAIL")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, using default insecure key")
		cfg.JWTSecret = insecureJWTSecret
	}

	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", 12*time.Hour)
	cfg.UnpaidCheckInterval = durationOr(v, "UNPAID_CHECK_INTERVAL", 24*time.Hour)
	cfg.UnpaidGracePeriod = durationOr(v, "UNPAID_GRACE_PERIOD", 7*24*time.Hour)
	cfg.PurgeInterval = durationOr(v, "PURGE_INTERVAL", 24*time.Hour)
	cfg.PurgeRetention = durationOr(v, "PURGE_RETENTION", 365*24*time.Hour)

	if cfg.LoginRatePerSecond <= 0 {
		cfg.LoginRatePerSecond = 1
	}
	if cfg.LoginRateBurst <= 0 {
		cfg.LoginRateBurst = 5
	}
	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set, admin user will not be bootstrapped")
	}
	return cfg
}

func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			slog.Warn("invalid duration, using default", slog.String("key", key), slog.String("value", raw), slog.Duration("default", def))
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
