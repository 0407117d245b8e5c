package db

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/smith3v/reply-reminder/pkg/config"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryDSN is a process-local sqlite database that vanishes on exit.
const MemoryDSN = "file:reply-reminder?mode=memory&cache=shared"

var ErrNotFound = errors.New("record not found")

// Store owns the contacts, messages and settings tables. It is created by
// the process entry point and handed to every consumer.
type Store struct {
	db *gorm.DB
}

func Open(cfg config.DatabaseConfig) (*Store, error) {
	gormLogger, gormErr := newGormLogger(config.AppConfig.Logging.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", config.AppConfig.Logging.GormLevel, "error", gormErr)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = MemoryDSN
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(postgresDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, err
	}
	if gdb.Dialector.Name() == "sqlite" {
		// One connection keeps the in-memory database alive and serialises access.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	store, err := NewStore(gdb)
	if err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return nil, err
	}
	return store, nil
}

// NewStore wraps an open connection and migrates the schema.
func NewStore(gdb *gorm.DB) (*Store, error) {
	if err := gdb.AutoMigrate(&Contact{}, &Message{}, &Settings{}); err != nil {
		return nil, err
	}
	return &Store{db: gdb}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func postgresDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return "host=" + cfg.Host +
		" user=" + cfg.User +
		" password=" + cfg.Password +
		" dbname=" + cfg.DBName +
		" port=" + strconv.Itoa(cfg.Port) +
		" sslmode=" + cfg.SSLMode
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
