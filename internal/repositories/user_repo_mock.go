package repositories

import (
	"fmt"
	"sort"
	"sync"

	"bazaar/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user. Email is unique per role.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Email == user.Email && u.Type == user.Type {
			return fmt.Errorf("email '%s' already registered as %s", user.Email, user.Type)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetAll returns all users ordered by ID.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetByEmailAndType returns the user registered with the email under the role.
func (r *MockUserRepository) GetByEmailAndType(email string, userType models.UserType) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email && u.Type == userType {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%s with email %s %w", userType, email, ErrNotFound)
}
