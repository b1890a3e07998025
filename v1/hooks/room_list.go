package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

// RoomList returns every room, newest first, without password hashes
func RoomList(roomsService *services.RoomsService) gin.HandlerFunc {
	return func(c *gin.Context) {

		rooms, err := roomsService.ListRooms()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "error": err.Error()})
			return
		}

		serialized := make([]map[string]interface{}, len(rooms))
		for i, room := range rooms {
			serialized[i] = room.Serialize()
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":   true,
			"room": serialized,
		})

	}
}
