package services_test

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/seed"
	"bazaar/pkg/events"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailAndType(email string, userType models.UserType) (*models.User, error) {
	args := m.Called(email, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByVendor(vendorID string) ([]models.Order, error) {
	args := m.Called(vendorID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByServiceProvider(serviceProviderID string) ([]models.Order, error) {
	args := m.Called(serviceProviderID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateBatch(orders []*models.Order) error {
	args := m.Called(orders)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(id string, from, to models.OrderStatus, deliveryDate *time.Time) (*models.Order, error) {
	args := m.Called(id, from, to, deliveryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ev events.Envelope) error {
	args := m.Called(ev)
	return args.Error(0)
}

type store struct {
	users     *repositories.MockUserRepository
	materials *repositories.MockMaterialRepository
	orders    *repositories.MockOrderRepository
}

func seededStore(t *testing.T) store {
	t.Helper()
	s := store{
		users:     repositories.NewMockUserRepository(),
		materials: repositories.NewMockMaterialRepository(),
		orders:    repositories.NewMockOrderRepository(),
	}
	require.NoError(t, seed.Load(s.users, s.materials, s.orders))
	return s
}

func (s store) user(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := s.users.GetByID(id)
	require.NoError(t, err)
	return u
}
