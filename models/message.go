package models

import (
	"database/sql"
	"time"
)

// Message type values
const (
	MessageTypeText = "text"
	MessageTypeFile = "file"
)

// Message is a single entry in a room's chat history. Exactly one of the
// text / file branches is populated, determined by Type.
type Message struct {
	ID             uint64 `gorm:"primaryKey"`
	RoomIdentifier string `gorm:"index:idx_room_created"`
	SenderEmail    string
	Type           string
	Text           string
	FileURL        sql.NullString
	FileName       sql.NullString
	FileMime       sql.NullString
	FileSize       sql.NullInt64
	CreatedDate    time.Time `gorm:"index:idx_room_created"`
}

// MessageFile is the structured file payload carried by file messages.
type MessageFile struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Mime string `json:"mime,omitempty"`
	Size int64  `json:"size"`
}

// File returns the structured file payload, or nil for text messages.
func (m *Message) File() *MessageFile {
	if m.Type != MessageTypeFile || !m.FileURL.Valid {
		return nil
	}
	return &MessageFile{
		URL:  m.FileURL.String,
		Name: m.FileName.String,
		Mime: m.FileMime.String,
		Size: m.FileSize.Int64,
	}
}

// SetFile populates the file columns from a structured payload.
func (m *Message) SetFile(file *MessageFile) {
	if file == nil {
		return
	}
	m.FileURL = sql.NullString{Valid: true, String: file.URL}
	m.FileName = sql.NullString{Valid: true, String: file.Name}
	if len(file.Mime) > 0 {
		m.FileMime = sql.NullString{Valid: true, String: file.Mime}
	}
	m.FileSize = sql.NullInt64{Valid: true, Int64: file.Size}
}

// Serialize converts the message into the shape sent to clients, over
// both the socket and HTTP paths.
func (m *Message) Serialize() map[string]interface{} {
	var file interface{}
	if f := m.File(); f != nil {
		file = f
	}
	return map[string]interface{}{
		"id":        m.ID,
		"room":      m.RoomIdentifier,
		"sender":    m.SenderEmail,
		"type":      m.Type,
		"text":      m.Text,
		"file":      file,
		"createdAt": m.CreatedDate,
	}
}
