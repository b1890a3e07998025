package hooks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/models"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/utils"
)

// MessageUpload accepts a multipart file, stores it, and records it as a
// file message in the room's history.
func MessageUpload(
	messagesService *services.MessagesService,
	fileStorage *services.FileStorageService,
	presence *services.PresenceRegistry,
	realtime RealtimeBridge,
) gin.HandlerFunc {
	return func(c *gin.Context) {

		account := utils.CtxGetAccount(c)
		if account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Non authentifié"})
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "No file"})
			return
		}

		roomID := c.Param("roomId")
		if !presence.IsPresent(roomID, account.Email) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "Vous n'êtes pas dans la salle"})
			return
		}

		// Store the bytes first, then record the message pointing at them
		stored, err := fileStorage.SaveUpload(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}

		msg, err := messagesService.SendMessage(&services.SendMessageInput{
			Room:   roomID,
			Sender: account.Email,
			Type:   models.MessageTypeFile,
			File:   stored,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}

		// Fan out to socket peers, when a gateway is attached
		if realtime != nil {
			realtime.Broadcast(roomID, "room_message", msg.Serialize())
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"message": msg.Serialize(),
		})

	}
}
