package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/v1/utils"
)

// RequireLogin aborts requests that did not authenticate. Must be mounted
// after CheckAuth.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.CtxGetAccount(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Non authentifié",
			})
			return
		}
		c.Next()
	}
}
