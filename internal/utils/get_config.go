package utils

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort   string `yaml:"APP_PORT"`
	AppURL    string `yaml:"APP_URL"`
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
	AWSEndpoint  string `yaml:"AWS_ENDPOINT"`

	// Scan sessions
	ScanIdleMinutes int `yaml:"SCAN_IDLE_MINUTES"`
}

var config Config

func defaultConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	return "config.yaml"
}

// LoadConfig reads .env, then the YAML file, then lets environment variables
// override any key. A missing file is not fatal.
func LoadConfig() {
	_ = godotenv.Load()

	config = Config{}
	if file, err := os.ReadFile(defaultConfigPath()); err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for _, key := range configKeys {
		if v, ok := os.LookupEnv(key); ok {
			setConfig(key, v)
		}
	}
}

var configKeys = []string{
	"APP_PORT", "APP_URL", "LOG_LEVEL", "LOG_FORMAT",
	"DB_DRIVER", "DB_USER", "DB_NAME", "DB_PASSWORD", "DB_PORT", "DB_HOST", "DB_PATH",
	"JWT_SECRET", "JWT_TTL_MINUTES",
	"SMTP_HOST", "SMTP_PORT", "SMTP_SENDER_NAME", "SMTP_AUTH_EMAIL", "SMTP_AUTH_PASSWORD",
	"AWS_S3_BUCKET", "AWS_S3_REGION", "AWS_ACCESS_KEY", "AWS_SECRET_KEY", "AWS_ENDPOINT",
	"SCAN_IDLE_MINUTES",
}

func setConfig(key, value string) {
	switch key {
	case "APP_PORT":
		config.AppPort = value
	case "APP_URL":
		config.AppURL = value
	case "LOG_LEVEL":
		config.LogLevel = value
	case "LOG_FORMAT":
		config.LogFormat = value
	case "DB_DRIVER":
		config.DBDriver = value
	case "DB_USER":
		config.DBUser = value
	case "DB_NAME":
		config.DBName = value
	case "DB_PASSWORD":
		config.DBPassword = value
	case "DB_PORT":
		config.DBPort = value
	case "DB_HOST":
		config.DBHost = value
	case "DB_PATH":
		config.DBPath = value
	case "JWT_SECRET":
		config.JWTSecret = value
	case "JWT_TTL_MINUTES":
		config.JWTTTLMinutes, _ = strconv.Atoi(value)
	case "SMTP_HOST":
		config.SMTPHost = value
	case "SMTP_PORT":
		config.SMTPPort = value
	case "SMTP_SENDER_NAME":
		config.SMTPSenderName = value
	case "SMTP_AUTH_EMAIL":
		config.SMTPAuthEmail = value
	case "SMTP_AUTH_PASSWORD":
		config.SMTPAuthPassword = value
	case "AWS_S3_BUCKET":
		config.AWSS3Bucket = value
	case "AWS_S3_REGION":
		config.AWSS3Region = value
	case "AWS_ACCESS_KEY":
		config.AWSAccessKey = value
	case "AWS_SECRET_KEY":
		config.AWSSecretKey = value
	case "AWS_ENDPOINT":
		config.AWSEndpoint = value
	case "SCAN_IDLE_MINUTES":
		config.ScanIdleMinutes, _ = strconv.Atoi(value)
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL_MINUTES":
		return strconv.Itoa(config.JWTTTLMinutes)
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_ENDPOINT":
		return config.AWSEndpoint
	case "SCAN_IDLE_MINUTES":
		return strconv.Itoa(config.ScanIdleMinutes)
	default:
		return ""
	}
}

// GetConfigInt returns key as an int, or fallback when unset or not a number.
func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
