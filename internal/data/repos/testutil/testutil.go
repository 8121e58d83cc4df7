package testutil

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	dbpkg "github.com/yungbote/people-notes-backend/internal/data/db"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	dbSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database private to the test. It is an in-memory
// SQLite database unless TEST_POSTGRES_DSN is set.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			tb.Fatalf("failed to open test postgres: %v", err)
		}
		if err := dbpkg.ResetSchema(db); err != nil {
			tb.Fatalf("reset schema: %v", err)
		}
	} else {
		name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
		path := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
		db, err = gorm.Open(sqlite.Open(dbpkg.SQLiteDSN(path)), cfg)
		if err != nil {
			tb.Fatalf("failed to open test sqlite: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			tb.Fatalf("sqlite pool: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err := dbpkg.AutoMigrateAll(db); err != nil {
			tb.Fatalf("automigrate: %v", err)
		}
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
