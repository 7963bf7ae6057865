package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tabletennis_backend/internals/configs"
)

// ConnectDB opens the single process-wide handle. Every component receives
// this *gorm.DB; nothing re-opens the database per call.
func ConnectDB(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         configs.NewGormLogger(cfg.LogSQL),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case configs.DriverPostgres:
		log.Println("[INFO] Connecting to PostgreSQL...")
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tabletennis",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, sslmode,
		)
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gcfg)
	default:
		log.Printf("[INFO] Opening SQLite database %s...", cfg.Path)
		db, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.Path, cfg.ForeignKeys)), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	if err := TunePool(db, cfg.Driver); err != nil {
		return nil, err
	}
	if err := Ping(db); err != nil {
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	log.Println("[INFO] DB connected.")
	return db, nil
}

// SQLiteDSN turns a file path (or an existing DSN) into a go-sqlite3 DSN with
// foreign keys and a busy timeout set on every connection.
func SQLiteDSN(path string, foreignKeys bool) string {
	fk := "off"
	if foreignKeys {
		fk = "on"
	}
	params := "_foreign_keys=" + fk + "&_busy_timeout=5000"

	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}

func TunePool(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("pool tune: %w", err)
	}
	if driver == configs.DriverPostgres {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(60 * time.Second)
		sqlDB.SetConnMaxLifetime(10 * time.Minute)
		return nil
	}
	// SQLite: one connection, the engine serializes writers. Never recycle it,
	// an in-memory database lives only as long as its connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
