package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

type RoomCreateReq struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Password    string `json:"password"`
	CreatedBy   string `json:"createdBy"`
}

func RoomCreate(
	roomsService *services.RoomsService,
	eventsService *services.EventsService,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		// Get the request body
		var req RoomCreateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "error": err.Error()})
			return
		}

		// The owner is always the authenticated account
		createdBy := req.CreatedBy
		if account := utils.CtxGetAccount(c); account != nil {
			createdBy = account.Email
		}

		// Create the room
		room, err := roomsService.CreateRoom(&services.CreateRoomInput{
			Identifier:  req.ID,
			Title:       req.Title,
			Description: req.Description,
			Password:    req.Password,
			CreatedBy:   createdBy,
		})
		if err != nil {
			abortRoomError(c, err)
			return
		}

		// Announce the change to SSE listeners
		eventsService.Announce("rooms-changed", gin.H{
			"action": "create",
			"room":   room.Serialize(),
		})

		c.JSON(http.StatusOK, gin.H{
			"ok":   true,
			"room": room.Serialize(),
		})

	}
}
