package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

type RoomDeleteReq struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

func RoomDelete(
	roomsService *services.RoomsService,
	eventsService *services.EventsService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body
		var req RoomDeleteReq
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": false, "error": err.Error()})
				return
			}
		}

		// The actor is the authenticated account
		email := req.Email
		if account := utils.CtxGetAccount(c); account != nil {
			email = account.Email
		}

		roomID := c.Param("roomId")
		if err := roomsService.DeleteRoom(email, roomID, req.Password); err != nil {
			abortRoomError(c, err)
			return
		}

		// Announce the change to SSE listeners
		eventsService.Announce("rooms-changed", gin.H{
			"action": "delete",
			"room":   roomID,
		})

		c.JSON(http.StatusOK, gin.H{"ok": true})

	}
}
