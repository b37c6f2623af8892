package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService. The cart is embedded in the user
// record and mutated in place; every operation here rewrites it as a whole.
type cartService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(userRepo repository.UserRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// AddItem adds quantity of a product to the cart. An existing entry is
// incremented, not overwritten.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]model.CartEntry, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.Cart
	found := false
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, model.CartEntry{ProductID: productID, Quantity: quantity})
	}

	if err := s.userRepo.UpdateCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("item added to cart")

	return cart, nil
}

// RemoveItem deletes the matching entry. An absent entry is a no-op, not an
// error.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) ([]model.CartEntry, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := removeEntry(user.Cart, productID)

	if err := s.userRepo.UpdateCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	return cart, nil
}

// SetItemQuantity overwrites the quantity of an existing entry. A quantity
// of zero or less removes the entry instead.
func (s *cartService) SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]model.CartEntry, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.Cart
	idx := -1
	for i := range cart {
		if cart[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart = removeEntry(cart, productID)
	} else {
		cart[idx].Quantity = quantity
	}

	if err := s.userRepo.UpdateCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	return cart, nil
}

// GetCart returns the cart with product references resolved to full catalog
// records. The join happens at read time and is never stored; entries whose
// product has since been deleted resolve to a nil product.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(user.Cart))
	for i, entry := range user.Cart {
		ids[i] = entry.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]model.CartLine, len(user.Cart))
	for i, entry := range user.Cart {
		lines[i] = model.CartLine{
			Product:  byID[entry.ProductID],
			Quantity: entry.Quantity,
		}
	}

	return lines, nil
}

func (s *cartService) loadUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUnauthorized
	}
	return user, nil
}

func removeEntry(cart []model.CartEntry, productID uuid.UUID) []model.CartEntry {
	filtered := make([]model.CartEntry, 0, len(cart))
	for _, entry := range cart {
		if entry.ProductID != productID {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
