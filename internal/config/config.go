package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	Hotel       HotelConfig
	MinIO       MinIOConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	MetricsPush MetricsPushConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

type HotelConfig struct {
	Store           string
	DataDir         string
	AssignmentsFile string
	ChargesFile     string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HotelRate     float64
	HotelBurst    int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type MetricsPushConfig struct {
	Enabled         bool
	Exporter        string
	Endpoint        string
	AuthToken       string
	IntervalSeconds int
}

const (
	StoreFile     = "file"
	StoreMinIO    = "minio"
	StoreDatabase = "database"
)

const (
	DefaultAssignmentsFile = "product_assignment.json"
	DefaultChargesFile     = "product_charges.json"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:      getenv("APP_SERVICE", "hotel-products"),
		AppVersion:   getenv("APP_VERSION", "0.1.0"),
		Environment:  getenv("ENVIRONMENT", "development"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint: getenv("OTLP_ENDPOINT", ""),
		Hotel: HotelConfig{
			Store:           normalizeStore(getenv("HOTEL_STORE", StoreFile)),
			DataDir:         getenv("HOTEL_DATA_DIR", "./data"),
			AssignmentsFile: getenv("HOTEL_ASSIGNMENTS_FILE", DefaultAssignmentsFile),
			ChargesFile:     getenv("HOTEL_CHARGES_FILE", DefaultChargesFile),
		},
		MinIO: MinIOConfig{
			Endpoint:  strings.TrimSpace(getenv("MINIO_ENDPOINT", "localhost:9000")),
			AccessKey: strings.TrimSpace(getenv("MINIO_ACCESS_KEY", "")),
			SecretKey: strings.TrimSpace(getenv("MINIO_SECRET_KEY", "")),
			Bucket:    strings.TrimSpace(getenv("MINIO_BUCKET", "hotel")),
			Prefix:    strings.Trim(strings.TrimSpace(getenv("MINIO_PREFIX", "")), "/"),
			UseSSL:    getenvBool("MINIO_USE_SSL", false),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:     strings.TrimSpace(getenv("RATE_LIMIT_REDIS_ADDR", "localhost:6379")),
			RedisPassword: getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:       getenvInt("RATE_LIMIT_REDIS_DB", 0),
			HotelRate:     getenvFloat("RATE_LIMIT_HOTEL_RATE", 5),
			HotelBurst:    getenvInt("RATE_LIMIT_HOTEL_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		MetricsPush: MetricsPushConfig{
			Enabled:         getenvBool("METRICS_PUSH_ENABLED", false),
			Exporter:        strings.ToLower(strings.TrimSpace(getenv("METRICS_PUSH_EXPORTER", ""))),
			Endpoint:        strings.TrimSpace(getenv("METRICS_PUSH_ENDPOINT", "")),
			AuthToken:       strings.TrimSpace(getenv("METRICS_PUSH_AUTH_TOKEN", "")),
			IntervalSeconds: getenvInt("METRICS_PUSH_INTERVAL_SECONDS", 60),
		},
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "postgres"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// DefaultDataset returns the dataset paths derived from env configuration.
func (c Config) DefaultDataset() Dataset {
	return Dataset{
		AssignmentsPath: filepath.Join(c.Hotel.DataDir, c.Hotel.AssignmentsFile),
		ChargesPath:     filepath.Join(c.Hotel.DataDir, c.Hotel.ChargesFile),
	}
}

func normalizeStore(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case StoreMinIO, "s3":
		return StoreMinIO
	case StoreDatabase, "db":
		return StoreDatabase
	case StoreFile, "":
		return StoreFile
	default:
		return value
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
