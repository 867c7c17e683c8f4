package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campus-pulse/backend/internal/auth"
	"github.com/campus-pulse/backend/internal/models"
)

// Secret signs tokens in tests.
const Secret = "test-secret"

// OpenTestDB opens an in-memory SQLite database with migrations applied.
// Closed via t.Cleanup.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get db handle: %v", err)
	}
	// A second connection to :memory: would see an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Ping{},
		&models.Comment{},
		&models.PingVote{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// CreateUser inserts a user with a known password ("password123").
func CreateUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// Token issues a bearer token for the given user signed with Secret.
func Token(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.IssueToken(Secret, user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}
