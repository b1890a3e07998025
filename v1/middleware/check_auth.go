package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

// CheckAuth resolves the bearer token on the request, if any, into an
// account stored on the context. It never rejects a request by itself;
// RequireLogin does that for the routes that need it.
func CheckAuth(
	authTokensService *services.AuthTokensService,
	accountsService *services.AccountsService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Pull the bearer token off the Authorization header
		auth := c.GetHeader("Authorization")
		if len(auth) == 0 {
			c.Next()
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		// Verify the token and resolve the account it identifies
		email, err := authTokensService.VerifyAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		account, err := accountsService.GetAccountByEmail(email)
		if err != nil || account == nil {
			c.Next()
			return
		}

		utils.CtxSetAccount(c, account)
		c.Next()

	}
}
