package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

func AuthWhoAmI(
	authTokensService *services.AuthTokensService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the account from the request
		account := utils.CtxGetAccount(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
			return
		}

		// Serialize the whoami info
		whoami, err := serializeWhoAmI(
			account,
			authTokensService,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Return the whoami info for this account
		c.JSON(http.StatusOK, gin.H{
			"data": whoami,
		})

	}
}
