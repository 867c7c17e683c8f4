package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campus-pulse/backend/internal/models"
)

// Service wraps the gorm connection and owns its lifecycle. It is created at
// startup and injected into handlers; there is no package-level instance.
type Service struct {
	db *gorm.DB
}

// New opens the database named by databaseURL. The scheme picks the driver:
// postgres:// connects via pgx, sqlite:// opens a local file. Migrations run
// on every start and the connection pool is bounded at maxOpenConns.
func New(databaseURL string, maxOpenConns int) (*Service, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"):
		dialector = postgres.Open(databaseURL)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q: must start with postgres:// or sqlite://", databaseURL)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Surfaces unique-index violations as gorm.ErrDuplicatedKey so
		// the vote toggle can distinguish them from storage failures.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Ping{},
		&models.Comment{},
		&models.PingVote{},
	); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Service{db: db}, nil
}

// DB returns the underlying gorm handle.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// Health pings the database and reports pool statistics.
func (s *Service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := make(map[string]string)

	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db error: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	dbStats := sqlDB.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

// Close releases the connection pool.
func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
