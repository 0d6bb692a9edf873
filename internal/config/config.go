package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	Files   FilesConfig
	MinIO   MinIOConfig
	S3      S3Config

	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StoreConfig elige el backend de documentos: memory | mongo | postgres.
type StoreConfig struct {
	Driver string
	DSN    string // postgres
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

// FilesConfig elige dónde viven los adjuntos: disk | minio | s3.
type FilesConfig struct {
	Driver      string
	UploadDir   string
	MaxUploadMB int64
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Region          string
}

type S3Config struct {
	Endpoint        string // vacío = AWS; con valor = R2/compatible
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
}

type RabbitMQConfig struct {
	URI      string // vacío = publicación deshabilitada
	Exchange string
}

type RedisConfig struct {
	URL        string // vacío = sin cache
	AnimalsTTL time.Duration
}

// AuthConfig: Provider "jwt" firma y verifica localmente; "remote"
// delega la verificación a un servicio de identidad externo.
type AuthConfig struct {
	Provider  string
	JWTSecret string
	JWTTTL    time.Duration

	RemoteURL     string
	RemoteAPIKey  string
	RemoteTimeout time.Duration
}

// Load carga .env (ENV_FILE para otra ruta) y luego lee variables de entorno.
func Load() *Config {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("no %s file found, using process env", envFile)
	}
	return FromEnv()
}

// FromEnv arma la configuración sin tocar archivos (útil en tests).
func FromEnv() *Config {
	env := getEnv("APP_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Environment:    env,
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			DSN:    getEnv("DB_DSN", ""),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "adopciones"),
			PoolSize: getEnvAsUint64("MONGODB_POOL_SIZE", 50),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Files: FilesConfig{
			Driver:      strings.ToLower(getEnv("FILE_STORAGE", "disk")),
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadMB: int64(getEnvAsInt("MAX_UPLOAD_MB", 25)),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:          getEnvAsBool("MINIO_USE_SSL", false),
			Bucket:          getEnv("MINIO_BUCKET", "uploads"),
			Region:          getEnv("MINIO_REGION", "us-east-1"),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "uploads"),
			Region:          getEnv("S3_REGION", "auto"),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "adoptions.events"),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			AnimalsTTL: getEnvAsDuration("ANIMALS_CACHE_TTL", 60*time.Second),
		},
		Auth: AuthConfig{
			Provider:      strings.ToLower(getEnv("AUTH_PROVIDER", "jwt")),
			JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret(env)),
			JWTTTL:        getEnvAsDuration("JWT_TTL", 24*time.Hour),
			RemoteURL:     getEnv("AUTH_REMOTE_URL", ""),
			RemoteAPIKey:  getEnv("AUTH_REMOTE_API_KEY", ""),
			RemoteTimeout: getEnvAsDuration("AUTH_REMOTE_TIMEOUT", 5*time.Second),
		},
	}
}

// Fuera de development no hay secreto por defecto: jwt.New falla sin JWT_SECRET.
func defaultJWTSecret(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "development") {
		return "dev-secret-change-me"
	}
	return ""
}

// MaxUploadBytes es el tope del cuerpo multipart.
func (c FilesConfig) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 25 << 20
	}
	return c.MaxUploadMB << 20
}

func (c ServerConfig) CorsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			log.Printf("Error converting %s to int: %v", key, err)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvAsUint64(key string, fallback uint64) uint64 {
	if value, ok := os.LookupEnv(key); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			log.Printf("Error converting %s to uint64: %v", key, err)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			log.Printf("Error converting %s to bool: %v", key, err)
			return fallback
		}
		return b
	}
	return fallback
}

// getEnvAsDuration acepta "90s"/"5m" o un entero en segundos.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting %s to duration: %v", key, err)
		return fallback
	}
	return time.Duration(n) * time.Second
}

func getEnvAsList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
