package hooks

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

// EventsStream holds an SSE connection open and forwards announcements
// (rooms-changed and friends) until the client goes away.
func EventsStream(eventsService *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)
		c.Writer.Flush()

		events, cancel := eventsService.Subscribe()
		defer cancel()

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(event.Data)
				if err != nil {
					continue
				}
				fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Name, data)
				c.Writer.Flush()
			}
		}

	}
}
