package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/logging"
)

const sqlitePrefix = "sqlite://"

// SlowQueryThreshold is the duration above which gorm logs a query as slow.
const SlowQueryThreshold = 100 * time.Millisecond

// Open returns a gorm handle for databaseURL. Postgres URLs go through the pgx
// stdlib driver; "sqlite://<path>" opens a local SQLite file (or ":memory:").
//
// No connection is made here: the pool dials on first use.
func Open(databaseURL string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logging.GormLogger(log, SlowQueryThreshold),
		DisableAutomaticPing: true,
	}

	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		db, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		return db, nil
	}

	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}

	log.Info("database configured", zap.String("dialect", db.Dialector.Name()))
	return db, nil
}

// Close releases the pool behind d.
func Close(d *gorm.DB) error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsUnavailable reports whether err means the database could not be reached,
// as opposed to a query that reached it and failed.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
