package ledger

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the run ledger at dsn and migrates its schema. dsn is
// either a local file path or a libsql(-compatible) URL (Turso). A local
// file gets WAL journaling turned on, since the orchestrator's worker pool
// (internal/orchestrator) calls BeginRun/FinishRun from several goroutines
// at once and the default rollback journal serializes every writer behind
// a file lock.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	remote := isRemoteDSN(dsn)

	if !remote {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("ledger: create directory: %w", err)
			}
		}
	}

	gormCfg := &gorm.Config{}
	if debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	dialector, conn, err := dialectorFor(dsn, remote)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("ledger: connect: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
		if !remote {
			sqlDB.Exec("PRAGMA journal_mode = WAL")
			sqlDB.Exec("PRAGMA busy_timeout = 5000")
		}
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("ledger: migrate: %w", err)
	}

	return db, nil
}

// dialectorFor builds the gorm.Dialector for dsn. A remote dsn is wired
// through a libsql connector (conn is non-nil so Connect can close it on a
// failed gorm.Open); a local path uses gorm's sqlite dialector directly.
func dialectorFor(dsn string, remote bool) (gorm.Dialector, *sql.DB, error) {
	if !remote {
		return sqlite.Open(dsn), nil, nil
	}

	var (
		connector driver.Connector
		err       error
	)
	if token := os.Getenv("ARMOR_LEDGER_AUTH_TOKEN"); token != "" {
		connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
	} else {
		connector, err = libsql.NewConnector(dsn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("ledger: libsql connector: %w", err)
	}

	conn := sql.OpenDB(connector)
	return sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn}), conn, nil
}

// isRemoteDSN reports whether dsn names a libsql(-compatible) URL (Turso)
// rather than a local sqlite file path.
func isRemoteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql:")
}
