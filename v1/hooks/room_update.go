package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

type RoomUpdateReq struct {
	RoomType string `json:"roomType"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// RoomUpdate toggles a room between public and private
func RoomUpdate(roomsService *services.RoomsService) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body
		var req RoomUpdateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "error": err.Error()})
			return
		}

		// The actor is the authenticated account
		email := req.Email
		if account := utils.CtxGetAccount(c); account != nil {
			email = account.Email
		}

		room, err := roomsService.ChangeRoomPrivacy(
			email,
			c.Param("roomId"),
			services.ParsePrivacyFlag(req.RoomType),
			req.Password,
		)
		if err != nil {
			abortRoomError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":   true,
			"room": room.Serialize(),
		})

	}
}
