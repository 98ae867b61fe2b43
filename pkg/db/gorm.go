package db

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	DSN          string // postgres://... or sqlite:<path>
	LogSQL       bool
	DisableFK    bool // set true if you manage FKs via SQL migrations
	MaxOpenConns int
}

const sqlitePrefix = "sqlite:"

// OpenGorm picks the dialector from the DSN. Unique violations come back as
// gorm.ErrDuplicatedKey on both drivers.
func OpenGorm(cfg Config) (*gorm.DB, error) {
	lvl := logger.Silent
	if cfg.LogSQL {
		lvl = logger.Info
	}
	gdb, err := gorm.Open(dialector(cfg.DSN), &gorm.Config{
		Logger: logger.New(log.New(log.Writer(), "", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: cfg.DisableFK,
	})
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return gdb, nil
}

func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	}
	return postgres.Open(dsn)
}

// IsSQLite reports whether dsn selects the sqlite driver.
func IsSQLite(dsn string) bool { return strings.HasPrefix(dsn, sqlitePrefix) }
