package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSRegion      string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryDays     int

	// Email delivery. Brevo is the primary transactional provider; plain SMTP
	// is the fallback. SkipEmails short-circuits all sends in non-prod.
	BrevoAPIKey     string
	BrevoBaseURL    string
	SenderEmail     string
	SenderName      string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SkipEmails      bool
	MaxSendRetries  int
	SendRetryDelay  time.Duration
	SendTimeout     time.Duration
	ResendCooldown  time.Duration
	VerifyExpiry    time.Duration
	ResetExpiry     time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Landlords     string
	Admins        string
	Properties    string
	Units         string
	Referrals     string
	Verifications string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Landlords:     getEnv("DYNAMO_TABLE_LANDLORDS", "landlords"),
			Admins:        getEnv("DYNAMO_TABLE_ADMINS", "admins"),
			Properties:    getEnv("DYNAMO_TABLE_PROPERTIES", "properties"),
			Units:         getEnv("DYNAMO_TABLE_UNITS", "units"),
			Referrals:     getEnv("DYNAMO_TABLE_REFERRALS", "referrals"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "email_verifications"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "frental-unit-images"),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryDays:     getEnvInt("JWT_EXPIRY_DAYS", 7),

		BrevoAPIKey:    getEnv("BREVO_API_KEY", ""),
		BrevoBaseURL:   getEnv("BREVO_BASE_URL", "https://api.brevo.com"),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
		SenderName:     getEnv("SENDER_NAME", "FRENTAL"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SkipEmails:     getEnvBool("SKIP_EMAILS", false),
		MaxSendRetries: getEnvInt("EMAIL_MAX_RETRIES", 3),
		SendRetryDelay: getEnvDuration("EMAIL_RETRY_DELAY", 2*time.Second),
		SendTimeout:    getEnvDuration("EMAIL_SEND_TIMEOUT", 10*time.Second),
		ResendCooldown: getEnvDuration("EMAIL_RESEND_COOLDOWN", 60*time.Second),
		VerifyExpiry:   getEnvDuration("VERIFY_CODE_EXPIRY", 24*time.Hour),
		ResetExpiry:    getEnvDuration("RESET_CODE_EXPIRY", time.Hour),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
