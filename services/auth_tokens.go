package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/godocompany/classroom-api/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Token lifetimes. Access tokens are carried on every HTTP request, socket
// tokens only open the realtime handshake, refresh tokens are stored
// server-side and exchanged once each.
const (
	AccessTokenTTL  = 24 * time.Hour
	SocketTokenTTL  = time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// AuthTokensService issues and verifies the platform's tokens. The HTTP
// access token and the socket handshake token are signed with distinct
// secrets, so leaking one of them never opens the other channel.
type AuthTokensService struct {
	DB           *gorm.DB
	AccessSecret string
	SocketSecret string
}

// createToken signs an HMAC token carrying the account's email claim
func (s *AuthTokensService) createToken(email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}

// verifyToken checks a token's signature and expiry and returns the email
// claim it carries.
func (s *AuthTokensService) verifyToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok || len(email) == 0 {
		return "", errors.New("token is missing the email claim")
	}
	return email, nil
}

// CreateAccessToken creates an HTTP bearer token for the account
func (s *AuthTokensService) CreateAccessToken(account *models.Account) (string, error) {
	return s.createToken(account.Email, s.AccessSecret, AccessTokenTTL)
}

// VerifyAccessToken verifies an HTTP bearer token and returns its email
func (s *AuthTokensService) VerifyAccessToken(tokenStr string) (string, error) {
	return s.verifyToken(tokenStr, s.AccessSecret)
}

// CreateSocketToken creates a short-lived token for the socket handshake
func (s *AuthTokensService) CreateSocketToken(account *models.Account) (string, error) {
	return s.createToken(account.Email, s.SocketSecret, SocketTokenTTL)
}

// VerifySocketToken verifies a socket handshake token and returns its email
func (s *AuthTokensService) VerifySocketToken(tokenStr string) (string, error) {
	return s.verifyToken(tokenStr, s.SocketSecret)
}

// CreateRefreshToken creates and stores an opaque refresh token for the
// account.
func (s *AuthTokensService) CreateRefreshToken(account *models.Account) (string, error) {

	// 64 random bytes, hex-encoded
	raw := make([]byte, 64)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	value := hex.EncodeToString(raw)

	refreshToken := models.RefreshToken{
		AccountEmail: account.Email,
		Token:        value,
		ExpiresAt:    time.Now().Add(RefreshTokenTTL),
		CreatedDate:  time.Now(),
	}
	if err := s.DB.Create(&refreshToken).Error; err != nil {
		return "", err
	}
	return value, nil

}

// ExchangeRefreshToken redeems a refresh token for the account it belongs
// to, revoking it in the process. A token that is unknown, expired or
// already revoked returns nil; reuse of a revoked token additionally
// revokes every other active token for the same account, since it means
// the token leaked.
func (s *AuthTokensService) ExchangeRefreshToken(value string) (*models.Account, error) {

	var refreshToken models.RefreshToken
	err := s.DB.
		Where("token = ?", value).
		First(&refreshToken).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !refreshToken.IsActive() {
		// Replayed or expired token: revoke the whole family
		err := s.DB.
			Model(&models.RefreshToken{}).
			Where("account_email = ?", refreshToken.AccountEmail).
			Where("revoked_date IS NULL").
			Update("revoked_date", time.Now()).
			Error
		if err != nil {
			return nil, err
		}
		return nil, nil
	}

	// Revoke the presented token
	err = s.DB.
		Model(&refreshToken).
		Update("revoked_date", sql.NullTime{Valid: true, Time: time.Now()}).
		Error
	if err != nil {
		return nil, err
	}

	var account models.Account
	err = s.DB.
		Where("deleted_date IS NULL").
		Where("email = ?", refreshToken.AccountEmail).
		First(&account).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil

}

// RevokeRefreshToken marks a refresh token revoked, if it exists and is
// still active. Used on logout.
func (s *AuthTokensService) RevokeRefreshToken(value string) error {
	return s.DB.
		Model(&models.RefreshToken{}).
		Where("token = ?", value).
		Where("revoked_date IS NULL").
		Update("revoked_date", time.Now()).
		Error
}
