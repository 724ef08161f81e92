// Package config reads the shop settings from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

type SessionStore string

const (
	SessionStoreCookie SessionStore = "cookie"
	SessionStoreRedis  SessionStore = "redis"
)

type ImageStore string

const (
	ImageStoreLocal ImageStore = "local"
	ImageStoreS3    ImageStore = "s3"
)

// LoadEnvFile loads variables from .env without overriding the ones already set.
// A missing file is not an error.
func LoadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}
	_ = godotenv.Load(filepath.Join(parent, ".env"))
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("TIENDA_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("TIENDA_DEBUG") == "true"
}

func GetDBFolderPath() string {
	return getEnv("TIENDA_DB_FOLDER", "db")
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	return getEnv("TIENDA_LOG_FOLDER", "log")
}

func GetListen() string {
	return os.Getenv("TIENDA_LISTEN")
}

func GetPort() int {
	return getEnvAsInt("TIENDA_PORT", 5000)
}

func GetCertFile() string {
	return os.Getenv("TIENDA_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("TIENDA_KEY_FILE")
}

// GetSessionSecret returns the configured cookie signing secret.
// Empty means the server falls back to the secret persisted in the settings table.
func GetSessionSecret() string {
	return os.Getenv("TIENDA_SESSION_SECRET")
}

func GetSessionStore() SessionStore {
	return SessionStore(getEnv("TIENDA_SESSION_STORE", string(SessionStoreCookie)))
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	return getEnvAsInt("TIENDA_SESSION_MAX_AGE", 60)
}

// GetRedisAddr returns the external Redis address. Empty selects the embedded server.
func GetRedisAddr() string {
	return os.Getenv("TIENDA_REDIS_ADDR")
}

func GetUploadFolder() string {
	return getEnv("TIENDA_UPLOAD_FOLDER", filepath.Join("static", "img"))
}

func GetImageStore() ImageStore {
	return ImageStore(getEnv("TIENDA_IMAGE_STORE", string(ImageStoreLocal)))
}

func GetS3Bucket() string {
	return os.Getenv("TIENDA_S3_BUCKET")
}

func GetS3Region() string {
	return getEnv("TIENDA_S3_REGION", "us-east-1")
}

func GetS3Endpoint() string {
	return os.Getenv("TIENDA_S3_ENDPOINT")
}

// GetS3Credentials returns static S3 credentials. Both empty means the default AWS credential chain.
func GetS3Credentials() (accessKey string, secretKey string) {
	return os.Getenv("TIENDA_S3_ACCESS_KEY"), os.Getenv("TIENDA_S3_SECRET_KEY")
}

// GetLoginRateLimit returns the allowed login attempts per minute and client IP.
func GetLoginRateLimit() int {
	return getEnvAsInt("TIENDA_LOGIN_RATE_LIMIT", 10)
}

// GetTrustedProxies returns the proxy addresses or CIDRs allowed to set forwarding headers.
// Empty means none are trusted and the client IP is the connection's remote address.
func GetTrustedProxies() []string {
	var proxies []string
	for _, p := range strings.Split(os.Getenv("TIENDA_TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
