package hooks

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

// MessageList returns a page of a room's history in chronological order.
// Query parameters: limit (default 50) and before (RFC 3339 timestamp).
func MessageList(
	roomsService *services.RoomsService,
	messagesService *services.MessagesService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		roomID := c.Param("roomId")

		// The room must exist, even though messages reference it only
		// by identifier
		room, err := roomsService.GetRoomByIdentifier(roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if room == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Salle introuvable"})
			return
		}

		opts := services.ListMessagesOptions{}
		if limitStr := c.Query("limit"); len(limitStr) > 0 {
			if limit, err := strconv.Atoi(limitStr); err == nil {
				opts.Limit = limit
			}
		}
		if beforeStr := c.Query("before"); len(beforeStr) > 0 {
			before, err := time.Parse(time.RFC3339, beforeStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre before invalide"})
				return
			}
			opts.Before = &before
		}

		msgs, err := messagesService.ListMessages(roomID, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, services.SerializeMessages(msgs))

	}
}
