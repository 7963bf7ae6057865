package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env file not found, using system environment")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running in Railway, using system environment")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvInt(key string, def int) int {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("[WARN] %s=%q is not a valid non-negative integer, using %d", key, raw, def)
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a valid boolean, using %t", key, raw, def)
		return def
	}
	return b
}

// =======================
// APP CONFIG
// =======================

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DatabaseConfig struct {
	Driver string
	Path   string // sqlite file (or DSN)

	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string

	// Integrity mode: FK enforcement on the storage engine plus the student
	// existence check before inserting a payment.
	ForeignKeys bool
	LogSQL      bool
}

type AppConfig struct {
	Port          string
	Database      DatabaseConfig
	CorsOrigins   []string
	BodyLimitMB   int
	RateLimitMax  int
	Timezone      string
	DeriveOnRead  bool
	UploadDir     string
	UploadURLBase string
	SeedOnStart   bool
}

func Load() AppConfig {
	driver := strings.ToLower(GetEnv("DB_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverPostgres {
		log.Printf("[WARN] DB_DRIVER=%q not supported, using %s", driver, DriverSQLite)
		driver = DriverSQLite
	}

	origins := []string{}
	for _, o := range strings.Split(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5500"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	bodyLimit := GetEnvInt("BODY_LIMIT_MB", 10)
	if bodyLimit == 0 {
		bodyLimit = 10
	}

	return AppConfig{
		Port: GetEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Driver:      driver,
			Path:        GetEnv("DB_PATH", "./academy.db"),
			User:        GetEnv("DB_USER"),
			Password:    GetEnv("DB_PASSWORD"),
			Host:        GetEnv("DB_HOST", "localhost"),
			Port:        GetEnv("DB_PORT", "5432"),
			Name:        GetEnv("DB_NAME"),
			SSLMode:     GetEnv("DB_SSLMODE", "disable"),
			ForeignKeys: GetEnvBool("DB_FOREIGN_KEYS", true),
			LogSQL:      GetEnvBool("DB_LOG_SQL", false),
		},
		CorsOrigins:   origins,
		BodyLimitMB:   bodyLimit,
		RateLimitMax:  GetEnvInt("RATE_LIMIT_MAX", 100),
		Timezone:      GetEnv("ACADEMY_TIMEZONE", "Asia/Jakarta"),
		DeriveOnRead:  GetEnvBool("PAYMENTS_DERIVE_ON_READ", true),
		UploadDir:     GetEnv("UPLOAD_DIR", "./uploads"),
		UploadURLBase: GetEnv("UPLOAD_URL_BASE", "/uploads"),
		SeedOnStart:   GetEnvBool("SEED_ON_START", false),
	}
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

// NewGormLogger logs every statement when verbose, otherwise only errors and slow queries.
func NewGormLogger(verbose bool) gormLogger.Interface {
	level := gormLogger.Warn
	if verbose {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isExpected(err):
		sql, rows := fc()
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sql, rows := fc()
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		sql, rows := fc()
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

// not-found lookups are part of normal control flow
func isExpected(err error) bool {
	return errors.Is(err, gormLogger.ErrRecordNotFound)
}
