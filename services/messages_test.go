package services

import (
	"testing"

	"github.com/godocompany/classroom-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// newMessagesService wires up a messages service with one seeded room
func newMessagesService(t *testing.T) (*MessagesService, *gorm.DB) {
	t.Helper()
	roomsService, db := newRoomsService(t, adminEmail)
	seedAccount(t, db, ownerEmail, "pw")
	_, err := roomsService.CreateRoom(&CreateRoomInput{
		Identifier: "math-101",
		Title:      "Math",
		CreatedBy:  ownerEmail,
	})
	if err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return &MessagesService{DB: db, RoomsService: roomsService}, db
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newMessagesService(t)
	var validationErr *ValidationError

	// room and sender are required
	_, err := svc.SendMessage(&SendMessageInput{Sender: ownerEmail, Text: "hi"})
	assert.ErrorAs(t, err, &validationErr)
	_, err = svc.SendMessage(&SendMessageInput{Room: "math-101", Text: "hi"})
	assert.ErrorAs(t, err, &validationErr)

	// the room must exist at send time
	_, err = svc.SendMessage(&SendMessageInput{
		Room: "missing", Sender: ownerEmail, Type: models.MessageTypeText, Text: "hi",
	})
	assert.ErrorAs(t, err, &validationErr)

	// a text message needs non-blank text
	_, err = svc.SendMessage(&SendMessageInput{
		Room: "math-101", Sender: ownerEmail, Type: models.MessageTypeText, Text: "   ",
	})
	assert.ErrorAs(t, err, &validationErr)

	// a file message needs a url
	_, err = svc.SendMessage(&SendMessageInput{
		Room: "math-101", Sender: ownerEmail, Type: models.MessageTypeFile,
		File: &models.MessageFile{Name: "notes.pdf"},
	})
	assert.ErrorAs(t, err, &validationErr)

	// unknown types are rejected
	_, err = svc.SendMessage(&SendMessageInput{
		Room: "math-101", Sender: ownerEmail, Type: "sticker", Text: "hi",
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestSendMessageTypeExclusivity(t *testing.T) {
	svc, _ := newMessagesService(t)

	// A text message stores text and no file payload
	textMsg, err := svc.SendMessage(&SendMessageInput{
		Room:   "math-101",
		Sender: ownerEmail,
		Type:   models.MessageTypeText,
		Text:   "hello",
		File:   &models.MessageFile{URL: "http://x/ignored"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "hello", textMsg.Text)
	assert.Nil(t, textMsg.File())

	// A file message stores the payload and forces empty text
	fileMsg, err := svc.SendMessage(&SendMessageInput{
		Room:   "math-101",
		Sender: ownerEmail,
		Type:   models.MessageTypeFile,
		Text:   "ignored",
		File: &models.MessageFile{
			URL:  "http://x/public/upload/notes.pdf",
			Name: "notes.pdf",
			Mime: "application/pdf",
			Size: 1234,
		},
	})
	assert.NoError(t, err)
	assert.Empty(t, fileMsg.Text)
	assert.NotNil(t, fileMsg.File())
	assert.Equal(t, "http://x/public/upload/notes.pdf", fileMsg.File().URL)
	assert.Equal(t, int64(1234), fileMsg.File().Size)

	// Round-trip through ListMessages keeps the invariants
	msgs, err := svc.ListMessages("math-101", ListMessagesOptions{})
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, models.MessageTypeText, msgs[0].Type)
	assert.Nil(t, msgs[0].File())
	assert.Equal(t, models.MessageTypeFile, msgs[1].Type)
	assert.Empty(t, msgs[1].Text)
	assert.NotNil(t, msgs[1].File())
}

func TestSendMessageDefaultsToText(t *testing.T) {
	svc, _ := newMessagesService(t)

	msg, err := svc.SendMessage(&SendMessageInput{
		Room:   "math-101",
		Sender: ownerEmail,
		Text:   "no type set",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, msg.Type)
}

func TestListMessagesChronologicalOrder(t *testing.T) {
	svc, db := newMessagesService(t)

	// Insert directly so the timestamps are spread out
	for i := 0; i < 5; i++ {
		msg := models.Message{
			RoomIdentifier: "math-101",
			SenderEmail:    ownerEmail,
			Type:           models.MessageTypeText,
			Text:           string(rune('a' + i)),
			CreatedDate:    dbTime(i),
		}
		assert.NoError(t, db.Create(&msg).Error)
	}

	msgs, err := svc.ListMessages("math-101", ListMessagesOptions{Limit: 3})
	assert.NoError(t, err)
	assert.Len(t, msgs, 3)

	// The most recent 3, in ascending order
	assert.Equal(t, "c", msgs[0].Text)
	assert.Equal(t, "d", msgs[1].Text)
	assert.Equal(t, "e", msgs[2].Text)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].CreatedDate.Before(msgs[i-1].CreatedDate))
	}
}

func TestListMessagesBefore(t *testing.T) {
	svc, db := newMessagesService(t)

	for i := 0; i < 5; i++ {
		msg := models.Message{
			RoomIdentifier: "math-101",
			SenderEmail:    ownerEmail,
			Type:           models.MessageTypeText,
			Text:           string(rune('a' + i)),
			CreatedDate:    dbTime(i),
		}
		assert.NoError(t, db.Create(&msg).Error)
	}

	before := dbTime(3)
	msgs, err := svc.ListMessages("math-101", ListMessagesOptions{
		Limit:  10,
		Before: &before,
	})
	assert.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.Equal(t, "a", msgs[0].Text)
	assert.Equal(t, "c", msgs[2].Text)
	for _, msg := range msgs {
		assert.True(t, msg.CreatedDate.Before(before))
	}
}

func TestListMessagesEmptyRoom(t *testing.T) {
	svc, _ := newMessagesService(t)

	msgs, err := svc.ListMessages("math-101", ListMessagesOptions{})
	assert.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestListMessagesDefaultLimit(t *testing.T) {
	svc, db := newMessagesService(t)

	for i := 0; i < DefaultHistoryLimit+10; i++ {
		msg := models.Message{
			RoomIdentifier: "math-101",
			SenderEmail:    ownerEmail,
			Type:           models.MessageTypeText,
			Text:           "m",
			CreatedDate:    dbTime(i),
		}
		assert.NoError(t, db.Create(&msg).Error)
	}

	msgs, err := svc.ListMessages("math-101", ListMessagesOptions{})
	assert.NoError(t, err)
	assert.Len(t, msgs, DefaultHistoryLimit)
}

func TestMessagesSurviveRoomDeletion(t *testing.T) {
	svc, db := newMessagesService(t)
	seedAccount(t, db, adminEmail, "pw")

	_, err := svc.SendMessage(&SendMessageInput{
		Room: "math-101", Sender: ownerEmail, Type: models.MessageTypeText, Text: "hi",
	})
	assert.NoError(t, err)

	// Deleting the room leaves the history orphaned under the old
	// identifier
	assert.NoError(t, svc.RoomsService.DeleteRoom(adminEmail, "math-101", ""))

	msgs, err := svc.ListMessages("math-101", ListMessagesOptions{})
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)

	// But new sends to the deleted room are rejected
	_, err = svc.SendMessage(&SendMessageInput{
		Room: "math-101", Sender: ownerEmail, Type: models.MessageTypeText, Text: "hi",
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
