package repositories

import (
	"fmt"
	"sort"
	"sync"

	"bazaar/internal/models"

	"github.com/google/uuid"
)

// MockMaterialRepository is an in-memory implementation of MaterialRepository.
// Listings come back in insertion order so the catalog is stable between calls.
type MockMaterialRepository struct {
	materials map[string]models.Material
	order     map[string]int
	next      int
	mu        sync.RWMutex
}

// NewMockMaterialRepository creates a new instance of MockMaterialRepository.
func NewMockMaterialRepository() *MockMaterialRepository {
	return &MockMaterialRepository{
		materials: make(map[string]models.Material),
		order:     make(map[string]int),
	}
}

// GetAll returns all materials.
func (r *MockMaterialRepository) GetAll() ([]models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list(func(models.Material) bool { return true }), nil
}

// GetByVendor returns the materials owned by a vendor.
func (r *MockMaterialRepository) GetByVendor(vendorID string) ([]models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list(func(m models.Material) bool { return m.VendorID == vendorID }), nil
}

// GetByID returns a material by its ID.
func (r *MockMaterialRepository) GetByID(id string) (*models.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	material, ok := r.materials[id]
	if !ok {
		return nil, fmt.Errorf("material with ID %s %w", id, ErrNotFound)
	}
	return &material, nil
}

// Create adds a new material.
func (r *MockMaterialRepository) Create(material *models.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	if _, exists := r.materials[material.ID]; exists {
		return fmt.Errorf("material with ID %s already exists", material.ID)
	}
	material.Normalize()
	r.materials[material.ID] = *material
	r.order[material.ID] = r.next
	r.next++
	return nil
}

// Update modifies an existing material.
func (r *MockMaterialRepository) Update(material *models.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[material.ID]; !ok {
		return fmt.Errorf("material with ID %s %w for update", material.ID, ErrNotFound)
	}
	material.Normalize()
	r.materials[material.ID] = *material
	return nil
}

// Delete removes a material by its ID.
func (r *MockMaterialRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[id]; !ok {
		return fmt.Errorf("material with ID %s %w for deletion", id, ErrNotFound)
	}
	delete(r.materials, id)
	delete(r.order, id)
	return nil
}

func (r *MockMaterialRepository) list(keep func(models.Material) bool) []models.Material {
	out := make([]models.Material, 0, len(r.materials))
	for _, m := range r.materials {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out
}
