package services

import (
	"testing"
	"time"

	"github.com/godocompany/classroom-api/models"
	"github.com/stretchr/testify/assert"
)

func newAuthTokensService(t *testing.T) *AuthTokensService {
	t.Helper()
	return &AuthTokensService{
		DB:           setupTestDB(t),
		AccessSecret: "access-secret",
		SocketSecret: "socket-secret",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newAuthTokensService(t)
	account := &models.Account{Email: "user@x.com"}

	token, err := svc.CreateAccessToken(account)
	assert.NoError(t, err)

	email, err := svc.VerifyAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@x.com", email)
}

func TestSocketTokenRoundTrip(t *testing.T) {
	svc := newAuthTokensService(t)
	account := &models.Account{Email: "user@x.com"}

	token, err := svc.CreateSocketToken(account)
	assert.NoError(t, err)

	email, err := svc.VerifySocketToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@x.com", email)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	svc := newAuthTokensService(t)
	account := &models.Account{Email: "user@x.com"}

	accessToken, err := svc.CreateAccessToken(account)
	assert.NoError(t, err)
	socketToken, err := svc.CreateSocketToken(account)
	assert.NoError(t, err)

	// Each channel rejects the other channel's token
	_, err = svc.VerifySocketToken(accessToken)
	assert.Error(t, err)
	_, err = svc.VerifyAccessToken(socketToken)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newAuthTokensService(t)

	_, err := svc.VerifyAccessToken("not-a-token")
	assert.Error(t, err)
	_, err = svc.VerifySocketToken("")
	assert.Error(t, err)
}

func TestRefreshTokenExchange(t *testing.T) {
	svc := newAuthTokensService(t)
	seedAccount(t, svc.DB, "user@x.com", "pw")
	account := &models.Account{Email: "user@x.com"}

	value, err := svc.CreateRefreshToken(account)
	assert.NoError(t, err)
	assert.NotEmpty(t, value)

	// First exchange succeeds and revokes the token
	exchanged, err := svc.ExchangeRefreshToken(value)
	assert.NoError(t, err)
	assert.NotNil(t, exchanged)
	assert.Equal(t, "user@x.com", exchanged.Email)

	// Replaying the same token fails
	replayed, err := svc.ExchangeRefreshToken(value)
	assert.NoError(t, err)
	assert.Nil(t, replayed)
}

func TestRefreshTokenReuseRevokesFamily(t *testing.T) {
	svc := newAuthTokensService(t)
	seedAccount(t, svc.DB, "user@x.com", "pw")
	account := &models.Account{Email: "user@x.com"}

	first, err := svc.CreateRefreshToken(account)
	assert.NoError(t, err)
	second, err := svc.CreateRefreshToken(account)
	assert.NoError(t, err)

	// Burn the first token, then replay it
	_, err = svc.ExchangeRefreshToken(first)
	assert.NoError(t, err)
	replayed, err := svc.ExchangeRefreshToken(first)
	assert.NoError(t, err)
	assert.Nil(t, replayed)

	// The replay revoked the still-active second token too
	exchanged, err := svc.ExchangeRefreshToken(second)
	assert.NoError(t, err)
	assert.Nil(t, exchanged)
}

func TestRevokeRefreshToken(t *testing.T) {
	svc := newAuthTokensService(t)
	seedAccount(t, svc.DB, "user@x.com", "pw")
	account := &models.Account{Email: "user@x.com"}

	value, err := svc.CreateRefreshToken(account)
	assert.NoError(t, err)
	assert.NoError(t, svc.RevokeRefreshToken(value))

	exchanged, err := svc.ExchangeRefreshToken(value)
	assert.NoError(t, err)
	assert.Nil(t, exchanged)

	// Revoking an unknown token is not an error
	assert.NoError(t, svc.RevokeRefreshToken("missing"))
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	svc := newAuthTokensService(t)
	seedAccount(t, svc.DB, "user@x.com", "pw")

	expired := models.RefreshToken{
		AccountEmail: "user@x.com",
		Token:        "expired-token",
		ExpiresAt:    time.Now().Add(-time.Hour),
		CreatedDate:  time.Now().Add(-2 * time.Hour),
	}
	assert.NoError(t, svc.DB.Create(&expired).Error)

	exchanged, err := svc.ExchangeRefreshToken("expired-token")
	assert.NoError(t, err)
	assert.Nil(t, exchanged)
}
