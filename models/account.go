package models

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is a registered user of the platform, referenced everywhere
// else by email address.
type Account struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string
	Avatar       string
	CreatedDate  time.Time
	DeletedDate  sql.NullTime
}

// VerifyPassword checks a plaintext password against the account's hash
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(a.PasswordHash),
		[]byte(password),
	)
	return err == nil
}
