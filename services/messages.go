package services

import (
	"strings"
	"time"

	"github.com/godocompany/classroom-api/models"
	"gorm.io/gorm"
)

// DefaultHistoryLimit is the page size used when a caller does not ask
// for a specific limit.
const DefaultHistoryLimit = 50

// MessagesService manages the append-only chat history of every room.
// Messages are written here by both the socket gateway and the HTTP
// hooks, so this service is the single place the validation rules live.
type MessagesService struct {
	DB           *gorm.DB
	RoomsService *RoomsService
}

// SendMessageInput carries the fields for a new message
type SendMessageInput struct {
	Room   string
	Sender string
	Type   string
	Text   string
	File   *models.MessageFile
}

// SendMessage validates and persists a message, assigning the server
// timestamp that defines its position in the room's history.
func (s *MessagesService) SendMessage(input *SendMessageInput) (*models.Message, error) {

	if input == nil || len(input.Room) == 0 || len(input.Sender) == 0 {
		return nil, &ValidationError{"room et sender requis"}
	}

	// The room must exist at send time
	room, err := s.RoomsService.GetRoomByIdentifier(input.Room)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &ValidationError{"Salle introuvable"}
	}

	msgType := input.Type
	if len(msgType) == 0 {
		msgType = models.MessageTypeText
	}

	msg := models.Message{
		RoomIdentifier: input.Room,
		SenderEmail:    input.Sender,
		Type:           msgType,
		CreatedDate:    time.Now(),
	}

	// Exactly one of the two payload branches is stored
	switch msgType {
	case models.MessageTypeText:
		if len(strings.TrimSpace(input.Text)) == 0 {
			return nil, &ValidationError{"Le texte est requis pour un message de type text"}
		}
		msg.Text = input.Text
	case models.MessageTypeFile:
		if input.File == nil || len(input.File.URL) == 0 {
			return nil, &ValidationError{"Les métadonnées fichier sont requises"}
		}
		msg.SetFile(input.File)
	default:
		return nil, &ValidationError{"Type de message inconnu"}
	}

	if err := s.DB.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil

}

// ListMessagesOptions carries the pagination options for ListMessages
type ListMessagesOptions struct {
	Limit  int
	Before *time.Time
}

// ListMessages returns at most opts.Limit of the most recent messages in
// a room, older than opts.Before when set. The page is fetched newest
// first and then reversed, so callers always receive chronological order
// and can append pages to the top of a scroll view.
func (s *MessagesService) ListMessages(roomIdentifier string, opts ListMessagesOptions) ([]*models.Message, error) {

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := s.DB.
		Where("room_identifier = ?", roomIdentifier)
	if opts.Before != nil {
		query = query.Where("created_date < ?", *opts.Before)
	}

	var msgs []*models.Message
	err := query.
		Order("created_date DESC").
		Limit(limit).
		Find(&msgs).
		Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil

}

// SerializeMessages converts a message page into the client shape
func SerializeMessages(msgs []*models.Message) []map[string]interface{} {
	out := make([]map[string]interface{}, len(msgs))
	for i, msg := range msgs {
		out[i] = msg.Serialize()
	}
	return out
}
