package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/godocompany/classroom-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// roomPasswordCost is the bcrypt cost factor for room passwords
const roomPasswordCost = 10

// RoomsService manages the room records and the authorization rules
// around creating, joining, updating and deleting them.
type RoomsService struct {
	DB              *gorm.DB
	AccountsService *AccountsService

	// AdminEmail is the platform administrator identity. The admin may
	// delete or update any room without knowing its password.
	AdminEmail string
}

// GetRoomByIdentifier gets the room with the provided identifier slug
func (s *RoomsService) GetRoomByIdentifier(identifier string) (*models.Room, error) {
	var room models.Room
	err := s.DB.
		Where("identifier = ?", identifier).
		First(&room).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// CreateRoomInput carries the fields for a new room
type CreateRoomInput struct {
	Identifier  string
	Title       string
	Description string
	Password    string
	CreatedBy   string
}

// CreateRoom creates a new room owned by input.CreatedBy. A non-empty
// password makes the room private, and is hashed before storage.
func (s *RoomsService) CreateRoom(input *CreateRoomInput) (*models.Room, error) {

	// All three of these are required
	if input == nil || len(input.Identifier) == 0 || len(input.Title) == 0 || len(input.CreatedBy) == 0 {
		return nil, &ValidationError{"Champ(s) manquant(s) : id, title et createdBy sont requis."}
	}

	// The identifier slug must be unique
	existing, err := s.GetRoomByIdentifier(input.Identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ConflictError{"Un salon avec cet id existe déjà."}
	}

	// The owner must resolve to a known account
	owner, err := s.AccountsService.GetAccountByEmail(input.CreatedBy)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &UserNotFoundError{"Le créateur indiqué est introuvable."}
	}

	room := models.Room{
		Identifier:  input.Identifier,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
		CreatedDate: time.Now(),
	}

	// Hash the password, if one was provided
	if len(input.Password) > 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), roomPasswordCost)
		if err != nil {
			return nil, err
		}
		room.PasswordHash = sql.NullString{Valid: true, String: string(hash)}
		room.IsPrivate = true
	}

	if err := s.DB.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil

}

// JoinRoom validates that a room exists and that the provided password
// matches. This check is advisory: it does not record presence. Presence
// is only ever granted by the socket gateway's own join handling.
func (s *RoomsService) JoinRoom(identifier, password string) (*models.Room, error) {

	if len(identifier) == 0 {
		return nil, &ValidationError{"roomId requis."}
	}

	room, err := s.GetRoomByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &NotFoundError{"Salle introuvable."}
	}

	if !room.CheckPassword(password) {
		return nil, &InvalidPasswordError{"Mot de passe incorrect."}
	}

	return room, nil

}

// authorizeRoomActor resolves the actor and checks it against the room's
// owner and the admin identity. Returns whether the actor is the admin.
func (s *RoomsService) authorizeRoomActor(actorEmail string, room *models.Room, action string) (bool, error) {

	actor, err := s.AccountsService.GetAccountByEmail(actorEmail)
	if err != nil {
		return false, err
	}
	if actor == nil {
		return false, &UserNotFoundError{"Utilisateur non trouvé."}
	}

	isAdmin := len(s.AdminEmail) > 0 && s.AdminEmail == actorEmail
	if !isAdmin && room.CreatedBy != actorEmail {
		return false, &ForbiddenError{
			"Non autorisé : seul le créateur ou l'administrateur peut " + action + " cette salle.",
		}
	}
	return isAdmin, nil

}

// DeleteRoom removes a room. Only the room's owner or the admin may
// delete it, and a non-admin must supply the room's password when it has
// one. Deleting a room does not delete its messages: history is kept
// around on purpose, orphaned under the old room identifier.
func (s *RoomsService) DeleteRoom(actorEmail, identifier, password string) error {

	if len(identifier) == 0 {
		return &ValidationError{"roomId requis."}
	}
	if len(actorEmail) == 0 {
		return &ValidationError{"L'email de l'utilisateur est requis."}
	}

	room, err := s.GetRoomByIdentifier(identifier)
	if err != nil {
		return err
	}
	if room == nil {
		return &NotFoundError{"Salle introuvable."}
	}

	isAdmin, err := s.authorizeRoomActor(actorEmail, room, "supprimer")
	if err != nil {
		return err
	}

	// The admin bypasses the password check
	if !isAdmin && room.PasswordHash.Valid {
		if !room.CheckPassword(password) {
			return &InvalidPasswordError{"Mot de passe incorrect — suppression refusée."}
		}
	}

	return s.DB.
		Where("identifier = ?", identifier).
		Delete(&models.Room{}).
		Error

}

// ChangeRoomPrivacy toggles a room between public and private. Making a
// room private requires a password: the one supplied here, or the one it
// already has. Making it public clears the password unconditionally.
func (s *RoomsService) ChangeRoomPrivacy(actorEmail, identifier string, makePrivate bool, password string) (*models.Room, error) {

	if len(identifier) == 0 {
		return nil, &ValidationError{"roomId requis."}
	}
	if len(actorEmail) == 0 {
		return nil, &ValidationError{"L'email de l'utilisateur est requis."}
	}

	room, err := s.GetRoomByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &NotFoundError{"Salle introuvable."}
	}

	isAdmin, err := s.authorizeRoomActor(actorEmail, room, "modifier")
	if err != nil {
		return nil, err
	}

	// A non-admin must prove knowledge of the current password before
	// any change is applied
	if !isAdmin && room.PasswordHash.Valid {
		if !room.CheckPassword(password) {
			return nil, &InvalidPasswordError{"Mot de passe incorrect — modification refusée."}
		}
	}

	if makePrivate {
		if !room.PasswordHash.Valid && len(password) == 0 {
			return nil, &ValidationError{"Un mot de passe est requis pour rendre la salle privée."}
		}
		// A supplied password (re)hashes and replaces the stored one.
		// Otherwise the room keeps the hash we just verified above.
		if len(password) > 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), roomPasswordCost)
			if err != nil {
				return nil, err
			}
			room.PasswordHash = sql.NullString{Valid: true, String: string(hash)}
		}
		room.IsPrivate = true
	} else {
		room.PasswordHash = sql.NullString{}
		room.IsPrivate = false
	}

	// One update covers both branches so the hash and the flag never
	// diverge in storage
	err = s.DB.
		Model(room).
		Updates(map[string]interface{}{
			"password_hash": room.PasswordHash,
			"is_private":    room.IsPrivate,
		}).
		Error
	if err != nil {
		return nil, err
	}
	return room, nil

}

// ListRooms gets all rooms, newest first
func (s *RoomsService) ListRooms() ([]*models.Room, error) {
	var rooms []*models.Room
	err := s.DB.
		Order("created_date DESC").
		Find(&rooms).
		Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// ParsePrivacyFlag normalizes the roomType value accepted by the update
// endpoint into a boolean. Clients send "private" / "public" but some
// older ones send booleans or "true"/"1".
func ParsePrivacyFlag(roomType string) bool {
	switch strings.ToLower(strings.TrimSpace(roomType)) {
	case "private", "privé", "prive", "true", "1":
		return true
	}
	return false
}
