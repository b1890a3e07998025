package services

import (
	"testing"
	"time"

	"github.com/godocompany/classroom-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.Room{},
		&models.Message{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedAccount creates an account with the given email and password
func seedAccount(t *testing.T, db *gorm.DB, email, password string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	account := models.Account{
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		CreatedDate:  time.Now(),
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return &account
}

// dbTime returns a deterministic timestamp i minutes after a fixed base
func dbTime(i int) time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(i) * time.Minute)
}

// newRoomsService wires up a rooms service over a fresh database
func newRoomsService(t *testing.T, adminEmail string) (*RoomsService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return &RoomsService{
		DB:              db,
		AccountsService: &AccountsService{DB: db},
		AdminEmail:      adminEmail,
	}, db
}
