package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/models"
	"github.com/godocompany/classroom-api/services"
)

type AuthLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func AuthLogin(
	accountsService *services.AccountsService,
	authTokensService *services.AuthTokensService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body
		var req AuthLoginReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Find the account with the provided email and password
		account, err := accountsService.FindByLogin(
			req.Email,
			req.Password,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if account == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect email or password"})
			return
		}

		// Serialize the whoami info, including the token set
		whoami, err := serializeWhoAmI(
			account,
			authTokensService,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Logging in also gets a refresh token
		refreshToken, err := authTokensService.CreateRefreshToken(account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		whoami["refreshToken"] = refreshToken

		// Return the whoami info for this account
		c.JSON(http.StatusOK, gin.H{
			"data": whoami,
		})

	}
}

func serializeWhoAmI(
	account *models.Account,
	authTokensService *services.AuthTokensService,
) (map[string]interface{}, error) {

	// Create the HTTP access token for the account
	accessToken, err := authTokensService.CreateAccessToken(account)
	if err != nil {
		return nil, err
	}

	// Create the socket handshake token. It is signed with a different
	// secret than the access token, so clients need both.
	socketToken, err := authTokensService.CreateSocketToken(account)
	if err != nil {
		return nil, err
	}

	// Return the map of whoami info
	return map[string]interface{}{
		"id":          account.ID,
		"email":       account.Email,
		"name":        account.Name,
		"token":       accessToken,
		"socketToken": socketToken,
	}, nil
}
