package models

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Room represents a single chat room, with a unique chat history.
// The Identifier is a caller-chosen slug (ex: "math-101") and never changes.
type Room struct {
	ID           uint64 `gorm:"primaryKey"`
	Identifier   string `gorm:"uniqueIndex"`
	Title        string
	Description  string
	PasswordHash sql.NullString
	IsPrivate    bool
	CreatedBy    string
	CreatedDate  time.Time
}

// CheckPassword verifies a plaintext password against the room's stored hash.
// A room without a password hash is public and accepts any password.
func (r *Room) CheckPassword(plaintext string) bool {
	if !r.PasswordHash.Valid {
		return true
	}
	err := bcrypt.CompareHashAndPassword(
		[]byte(r.PasswordHash.String),
		[]byte(plaintext),
	)
	return err == nil
}

// Serialize converts the room into the shape returned to clients.
// The password hash is never included.
func (r *Room) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":          r.Identifier,
		"title":       r.Title,
		"description": r.Description,
		"isPrivate":   r.IsPrivate,
		"createdBy":   r.CreatedBy,
		"createdAt":   r.CreatedDate,
	}
}
