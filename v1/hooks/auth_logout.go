package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

type AuthLogoutReq struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthLogout revokes the presented refresh token. Access tokens are not
// tracked server-side and simply age out.
func AuthLogout(
	authTokensService *services.AuthTokensService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body
		var req AuthLogoutReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := authTokensService.RevokeRefreshToken(req.RefreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{},
		})

	}
}
