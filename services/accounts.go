package services

import (
	"errors"

	"github.com/godocompany/classroom-api/models"
	"gorm.io/gorm"
)

// AccountsService manages registered user accounts. Rooms and messages
// reference accounts by email, so this is the identity lookup used by
// the other services.
type AccountsService struct {
	DB *gorm.DB
}

// GetAccountByEmail gets the account with the provided email address
func (s *AccountsService) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := s.DB.
		Where("deleted_date IS NULL").
		Where("email LIKE ?", email).
		First(&account).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByLogin finds an account with the provided login credentials
func (s *AccountsService) FindByLogin(email, password string) (*models.Account, error) {

	// Find the account with the email
	account, err := s.GetAccountByEmail(email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}

	// Verify the password
	if !account.VerifyPassword(password) {
		return nil, nil
	}

	// Return the account
	return account, nil

}
