package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/models"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

type MessagePostReq struct {
	Type string              `json:"type"`
	Text string              `json:"text"`
	File *models.MessageFile `json:"file"`
}

// MessagePost is the synchronous fallback for clients that cannot hold a
// socket open. It enforces the same contract as the socket path: the
// sender must currently be present in the room, and stored messages are
// fanned out to socket-connected peers through the realtime bridge.
func MessagePost(
	messagesService *services.MessagesService,
	presence *services.PresenceRegistry,
	realtime RealtimeBridge,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		account := utils.CtxGetAccount(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
			return
		}

		// Get the request body
		var req MessagePostReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The HTTP path reads presence but never mutates it
		roomID := c.Param("roomId")
		if !presence.IsPresent(roomID, account.Email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas dans la salle"})
			return
		}

		msg, err := messagesService.SendMessage(&services.SendMessageInput{
			Room:   roomID,
			Sender: account.Email,
			Type:   req.Type,
			Text:   req.Text,
			File:   req.File,
		})
		if err != nil {
			abortMessageError(c, err)
			return
		}

		// Fan out to socket peers, when a gateway is attached
		if realtime != nil {
			realtime.Broadcast(roomID, "room_message", msg.Serialize())
		}

		c.JSON(http.StatusCreated, msg.Serialize())

	}
}
