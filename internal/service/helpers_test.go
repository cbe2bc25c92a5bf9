package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quill/internal/auth"
	appdb "quill/internal/db"
	"quill/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A pooled second connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := appdb.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func registerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := NewAuthService(db).Register(username, username+"@example.com", "secret1")
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return user
}

func principalOf(u *models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Username: u.Username, Roles: u.RoleNames()}
}

func adminPrincipal() auth.Principal {
	return auth.Principal{UserID: 0, Username: "root", Roles: []string{models.RoleAdmin}}
}
