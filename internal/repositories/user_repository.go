package repositories

import "bazaar/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	// GetByEmailAndType matches the email exactly within one role.
	GetByEmailAndType(email string, userType models.UserType) (*models.User, error)
}
