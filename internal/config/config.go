package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Storage struct {
		Backend  string // "document" or "postgres"
		DataFile string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port    string
		GinMode string
	}

	Admin struct {
		PasswordHash string // bcrypt hash; empty disables auth entirely
		JWTSecret    string
		TokenTTLMin  int
	}

	Backup struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}

	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.Storage.Backend = getEnv("STORAGE_BACKEND", "document")
	config.Storage.DataFile = getEnv("DATA_FILE", "./data/points.json")

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "prestigio")
	config.DB.Password = getEnv("DB_PASSWORD", "prestigio_password")
	config.DB.Name = getEnv("DB_NAME", "prestigio_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "3457")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
	config.Admin.JWTSecret = getEnv("JWT_SECRET", "")
	config.Admin.TokenTTLMin = getEnvAsInt("JWT_TTL_MINUTES", 720)

	config.Backup.Endpoint = getEnv("BACKUP_ENDPOINT", "")
	config.Backup.AccessKey = getEnv("BACKUP_ACCESS_KEY", "")
	config.Backup.SecretKey = getEnv("BACKUP_SECRET_KEY", "")
	config.Backup.Bucket = getEnv("BACKUP_BUCKET", "prestigio-snapshots")
	config.Backup.UseSSL = getEnvAsBool("BACKUP_USE_SSL", true)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	config.LogLevel = getEnv("LOG_LEVEL", "info")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// AuthEnabled reports whether the admin surface requires a login
func (c *Config) AuthEnabled() bool {
	return c.Admin.PasswordHash != "" && c.Admin.JWTSecret != ""
}

// BackupEnabled reports whether snapshot backups are configured
func (c *Config) BackupEnabled() bool {
	return c.Backup.Endpoint != "" && c.Backup.AccessKey != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
