package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/pkg/events"

	"github.com/google/uuid"
)

// CartView is the priced content of a cart.
type CartView struct {
	Items        []models.CartItem    `json:"items"`
	TotalPrice   float64              `json:"totalPrice"`
	TotalItems   int                  `json:"totalItems"`
	VendorGroups []models.VendorGroup `json:"vendorGroups"`
}

// CheckoutResult lists the orders written by one checkout.
type CheckoutResult struct {
	Orders      []models.Order `json:"orders"`
	VendorCount int            `json:"vendorCount"`
}

// CartService keeps one cart per service provider and turns it into orders.
type CartService struct {
	carts     map[string]*models.Cart
	mu        sync.Mutex
	materials repositories.MaterialRepository
	orders    repositories.OrderRepository
	publisher events.Publisher
	producer  string
	now       func() time.Time
}

// NewCartService creates a new CartService. publisher may be nil.
func NewCartService(materials repositories.MaterialRepository, orders repositories.OrderRepository, publisher events.Publisher, producer string) *CartService {
	return &CartService{
		carts:     make(map[string]*models.Cart),
		materials: materials,
		orders:    orders,
		publisher: publisher,
		producer:  producer,
		now:       time.Now,
	}
}

func viewOf(cart *models.Cart) CartView {
	groups := cart.GroupByVendor()
	if groups == nil {
		groups = []models.VendorGroup{}
	}
	return CartView{
		Items:        cart.Items(),
		TotalPrice:   cart.TotalPrice(),
		TotalItems:   cart.TotalItems(),
		VendorGroups: groups,
	}
}

// cartFor returns the buyer's cart. Callers hold s.mu.
func (s *CartService) cartFor(buyer *models.User) (*models.Cart, error) {
	if !buyer.IsServiceProvider() {
		return nil, ErrForbidden
	}
	cart, ok := s.carts[buyer.ID]
	if !ok {
		cart = models.NewCart()
		s.carts[buyer.ID] = cart
	}
	return cart, nil
}

// View returns the buyer's cart.
func (s *CartService) View(buyer *models.User) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(buyer)
	if err != nil {
		return CartView{}, err
	}
	return viewOf(cart), nil
}

// AddItem puts qty units of a material in the cart. The merged quantity may
// not exceed the material's stock.
func (s *CartService) AddItem(buyer *models.User, materialID string, qty int) (CartView, error) {
	if qty <= 0 {
		return CartView{}, models.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(buyer)
	if err != nil {
		return CartView{}, err
	}
	material, err := s.materials.GetByID(materialID)
	if err != nil {
		return CartView{}, err
	}
	inCart := 0
	if item, ok := cart.Get(materialID); ok {
		inCart = item.CartQuantity
	}
	if err := checkStock(material, inCart+qty); err != nil {
		return CartView{}, err
	}
	if err := cart.Add(*material, qty); err != nil {
		return CartView{}, err
	}
	return viewOf(cart), nil
}

// UpdateItem sets the quantity of a cart entry; qty <= 0 removes it.
func (s *CartService) UpdateItem(buyer *models.User, materialID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(buyer)
	if err != nil {
		return CartView{}, err
	}
	if _, ok := cart.Get(materialID); !ok {
		return CartView{}, fmt.Errorf("material %s in cart %w", materialID, repositories.ErrNotFound)
	}
	if qty > 0 {
		material, err := s.materials.GetByID(materialID)
		if err != nil {
			return CartView{}, err
		}
		if err := checkStock(material, qty); err != nil {
			return CartView{}, err
		}
	}
	cart.UpdateQuantity(materialID, qty)
	return viewOf(cart), nil
}

// RemoveItem drops a material from the cart.
func (s *CartService) RemoveItem(buyer *models.User, materialID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(buyer)
	if err != nil {
		return CartView{}, err
	}
	if !cart.Remove(materialID) {
		return CartView{}, fmt.Errorf("material %s in cart %w", materialID, repositories.ErrNotFound)
	}
	return viewOf(cart), nil
}

// Checkout turns every cart line into a pending order at the material's
// current price. Either all orders are written or none are; the cart is
// cleared only on success.
func (s *CartService) Checkout(buyer *models.User) (*CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(buyer)
	if err != nil {
		return nil, err
	}
	if cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	groups := cart.GroupByVendor()
	var batch []*models.Order
	for _, group := range groups {
		for _, item := range group.Items {
			material, err := s.materials.GetByID(item.ID)
			if err != nil {
				return nil, fmt.Errorf("checkout of %s failed: %w", item.Name, err)
			}
			if err := checkStock(material, item.CartQuantity); err != nil {
				return nil, fmt.Errorf("checkout of %s failed: %w", item.Name, err)
			}
			batch = append(batch, &models.Order{
				ID:                  uuid.New().String(),
				MaterialID:          material.ID,
				MaterialName:        material.Name,
				VendorID:            material.VendorID,
				VendorName:          material.VendorName,
				ServiceProviderID:   buyer.ID,
				ServiceProviderName: buyer.Name,
				Quantity:            item.CartQuantity,
				TotalPrice:          material.Price * float64(item.CartQuantity),
				Status:              models.StatusPending,
				OrderDate:           now,
			})
		}
	}

	if err := s.orders.CreateBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to place orders: %w", err)
	}
	cart.Clear()
	log.Printf("Checkout by %s placed %d orders with %d vendors", buyer.ID, len(batch), len(groups))

	result := &CheckoutResult{Orders: make([]models.Order, len(batch)), VendorCount: len(groups)}
	for i, o := range batch {
		result.Orders[i] = *o
		publishEvent(s.publisher, s.producer, events.EventOrderCreated, o.ID, events.OrderCreatedPayload{
			OrderID:           o.ID,
			MaterialID:        o.MaterialID,
			VendorID:          o.VendorID,
			ServiceProviderID: o.ServiceProviderID,
			Quantity:          o.Quantity,
			TotalPrice:        o.TotalPrice,
			Status:            string(o.Status),
		})
	}
	return result, nil
}

func checkStock(m *models.Material, qty int) error {
	if !m.InStock() {
		return fmt.Errorf("%s is out of stock: %w", m.Name, ErrInsufficientStock)
	}
	if qty > m.Quantity {
		return fmt.Errorf("%s: requested %d, available %d: %w", m.Name, qty, m.Quantity, ErrInsufficientStock)
	}
	return nil
}
