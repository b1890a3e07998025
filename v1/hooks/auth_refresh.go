package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

type AuthRefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthRefresh exchanges an active refresh token for a fresh token set.
// The presented token is revoked in the process.
func AuthRefresh(
	authTokensService *services.AuthTokensService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body
		var req AuthRefreshReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		account, err := authTokensService.ExchangeRefreshToken(req.RefreshToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token invalide"})
			return
		}

		whoami, err := serializeWhoAmI(account, authTokensService)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		refreshToken, err := authTokensService.CreateRefreshToken(account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		whoami["refreshToken"] = refreshToken

		c.JSON(http.StatusOK, gin.H{
			"data": whoami,
		})

	}
}
