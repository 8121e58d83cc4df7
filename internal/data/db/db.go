package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/people-notes-backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver string
	// Path is the SQLite database file. ":memory:" and "file:" URIs are accepted.
	Path string
	// DSN is the Postgres connection string.
	DSN           string
	SlowThreshold time.Duration
}

type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewService(logg *logger.Logger, opts Options) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverSQLite
	}
	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}

	cfg := &gorm.Config{
		Logger:         newGormLog(serviceLog, slow),
		TranslateError: true,
	}

	var (
		theDB *gorm.DB
		err   error
	)
	switch driver {
	case DriverSQLite:
		theDB, err = gorm.Open(sqlite.Open(SQLiteDSN(opts.Path)), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %q: %w", opts.Path, err)
		}
		// One writer at a time; also keeps a ":memory:" database alive and shared.
		sqlDB, err := theDB.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	case DriverPostgres:
		if strings.TrimSpace(opts.DSN) == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_URL")
		}
		theDB, err = gorm.Open(postgres.Open(opts.DSN), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", opts.Driver)
	}

	serviceLog.Info("database opened", "driver", driver, "path", opts.Path)
	return &Service{db: theDB, driver: driver, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Driver() string { return s.driver }

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLiteDSN turns a file path into a mattn/go-sqlite3 DSN with foreign keys on.
func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "people.db"
	}
	if path == ":memory:" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	return path + sep + "_foreign_keys=on"
}
