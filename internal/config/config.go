package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendLocal    = "local"
	BackendSupabase = "supabase"
	BackendMinio    = "minio"
)

type Config struct {
	Server   ServerConfig
	Resize   ResizeConfig
	Storage  StorageConfig
	Supabase SupabaseConfig
	Minio    MinioConfig
}

type ServerConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AllowedOrigin string
}

type ResizeConfig struct {
	MaxFileSize    int64
	DefaultQuality int
	MaxDimension   int
	MaxPixels      int64
}

type StorageConfig struct {
	Backend      string
	UploadPath   string
	PublicPrefix string
}

type SupabaseConfig struct {
	URL    string
	KEY    string
	BUCKET string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			ReadTimeout:   getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:  getDuration("WRITE_TIMEOUT", 30*time.Second),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		},
		Resize: ResizeConfig{
			MaxFileSize:    getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024), // 10MB
			DefaultQuality: getEnvAsInt("DEFAULT_QUALITY", 80),
			MaxDimension:   getEnvAsInt("MAX_DIMENSION", 10000),
			MaxPixels:      getEnvAsInt64("MAX_PIXELS", 50_000_000),
		},
		Storage: StorageConfig{
			Backend:      strings.ToLower(getEnv("STORAGE_BACKEND", BackendLocal)),
			UploadPath:   getEnv("UPLOAD_PATH", "./uploads"),
			PublicPrefix: strings.Trim(getEnv("PUBLIC_PREFIX", "uploads"), "/"),
		},
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			KEY:    getEnv("SUPABASE_KEY", ""),
			BUCKET: getEnv("SUPABASE_BUCKET", ""),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "resized"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
	}

	if cfg.Resize.DefaultQuality < 1 || cfg.Resize.DefaultQuality > 100 {
		cfg.Resize.DefaultQuality = 80
	}
	if cfg.Resize.MaxDimension <= 0 {
		cfg.Resize.MaxDimension = 10000
	}
	if cfg.Resize.MaxPixels <= 0 {
		cfg.Resize.MaxPixels = 50_000_000
	}
	if cfg.Storage.PublicPrefix == "" {
		cfg.Storage.PublicPrefix = "uploads"
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
