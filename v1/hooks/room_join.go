package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

type RoomJoinReq struct {
	Password string `json:"password"`
}

// RoomJoin validates a room password before the client opens a socket.
// This check is advisory only: presence is granted by the socket gateway
// when the client emits its own join event, which re-checks the password.
func RoomJoin(roomsService *services.RoomsService) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body. An empty body means an empty password.
		var req RoomJoinReq
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": false, "error": err.Error()})
				return
			}
		}

		room, err := roomsService.JoinRoom(c.Param("roomId"), req.Password)
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
