package models

import (
	"database/sql"
	"time"
)

// RefreshToken is an opaque, long-lived token stored server-side. It can be
// exchanged once for a fresh token pair, after which it is revoked.
type RefreshToken struct {
	ID           uint64 `gorm:"primaryKey"`
	AccountEmail string `gorm:"index"`
	Token        string `gorm:"uniqueIndex"`
	ExpiresAt    time.Time
	RevokedDate  sql.NullTime
	CreatedDate  time.Time
}

// IsActive reports whether the token can still be exchanged
func (t *RefreshToken) IsActive() bool {
	return !t.RevokedDate.Valid && time.Now().Before(t.ExpiresAt)
}
