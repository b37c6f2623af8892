package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultRecentOrderLimit bounds the admin recent-orders listing when no
// limit is supplied.
const DefaultRecentOrderLimit = 8

// OrderEventPublisher publishes order-placed events to a broker. A nil
// publisher disables events; publish failures never fail checkout.
type OrderEventPublisher interface {
	OrderPlaced(ctx context.Context, order *model.Order) error
}

// orderService implements OrderService. Checkout follows a fixed commit
// sequence: persist the order (durability point), then clear the source
// cart when one was used, then emit a notification and an event. Failures
// past the durability point are logged and swallowed, never rolled back.
type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	events        OrderEventPublisher
	logger        zerolog.Logger
}

// NewOrderService creates a new order service. events may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	events OrderEventPublisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		notifications: notifications,
		events:        events,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// Checkout builds and persists an order snapshot.
//
// Exactly one of two sources feeds the order: a non-empty explicit items
// list (buy-now, cart untouched, works for guests), or the authenticated
// user's stored cart (cleared afterwards). A guest with no explicit items
// is rejected; a cart is meaningless without an identity.
func (s *orderService) Checkout(ctx context.Context, userID *uuid.UUID, req *model.CheckoutRequest) (*model.Order, error) {
	if req == nil {
		req = &model.CheckoutRequest{}
	}

	var user *model.User
	if userID != nil {
		var err error
		user, err = s.userRepo.GetByID(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
	}

	var items []model.OrderItem
	usedCart := false
	if len(req.Items) > 0 {
		items = make([]model.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, normalizeItem(it.Product, it.Title, it.Price, it.Img, it.Images, it.Quantity))
		}
	} else {
		if user == nil || len(user.Cart) == 0 {
			return nil, model.ErrEmptyCart
		}
		usedCart = true

		var err error
		items, err = s.itemsFromCart(ctx, user.Cart)
		if err != nil {
			return nil, err
		}
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(parseAmount(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if req.Address.Street == "" && req.Address.PostalCode == "" {
		// Soft warning only: checkout is never blocked on address detail.
		s.logger.Warn().
			Any("user_id", userID).
			Msg("checkout address missing or incomplete")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "unknown"
	}

	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          model.StatusPlaced,
		PaymentMethod:   paymentMethod,
		ShippingAddress: req.Address,
		CreatedAt:       time.Now(),
	}

	// Step 1: persist. Failure here aborts the whole operation.
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Step 2: clear the source cart. The order stands even if this fails.
	if usedCart {
		if err := s.userRepo.ClearCart(ctx, user.ID); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Str("user_id", user.ID.String()).
				Msg("failed to clear cart after checkout; order is already placed")
		}
	}

	// Step 3: admin notification, best-effort.
	s.notifyOrderPlaced(ctx, user, order)

	// Step 4: broker event, best-effort.
	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, order); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("failed to publish order event")
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Str("total", total.String()).
		Bool("from_cart", usedCart).
		Msg("order placed")

	return order, nil
}

// itemsFromCart resolves cart entries into order item snapshots. Entries
// whose product has vanished normalize like an empty ad-hoc item, keeping
// the reference for history.
func (s *orderService) itemsFromCart(ctx context.Context, cart []model.CartEntry) ([]model.OrderItem, error) {
	ids := make([]uuid.UUID, len(cart))
	for i, entry := range cart {
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

	items := make([]model.OrderItem, 0, len(cart))
	for _, entry := range cart {
		productID := entry.ProductID
		var title, price, img string
		var images []string
		if p := byID[entry.ProductID]; p != nil {
			title = p.Title
			price = p.Price
			img = p.Img
			images = p.Images
		}
		items = append(items, normalizeItem(&productID, title, price, img, images, entry.Quantity))
	}

	return items, nil
}

// normalizeItem maps a source item into the snapshot shape stored on the
// order. It is the single normalization path for both checkout sources, so
// cart-derived and explicit-derived items come out structurally identical.
func normalizeItem(productID *uuid.UUID, title, price, img string, images []string, quantity int) model.OrderItem {
	if price == "" {
		price = "0"
	}
	if quantity < 1 {
		quantity = 1
	}

	imgs := images
	if len(imgs) == 0 && img != "" {
		imgs = []string{img}
	}
	if imgs == nil {
		imgs = []string{}
	}

	first := ""
	if len(imgs) > 0 {
		first = imgs[0]
	}

	return model.OrderItem{
		ProductID: productID,
		Title:     title,
		Price:     price,
		Img:       first,
		Images:    imgs,
		Quantity:  quantity,
	}
}

// parseAmount converts a display price string into a decimal. Everything
// that is not a digit or a dot is stripped first; anything still
// unparseable degrades to zero rather than failing the checkout.
func parseAmount(price string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, price)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// notifyOrderPlaced emits the admin notification for a new order. Failures
// are logged and swallowed; they never fail the checkout.
func (s *orderService) notifyOrderPlaced(ctx context.Context, user *model.User, order *model.Order) {
	actor := "Guest"
	meta := model.MetaUser{Name: order.ShippingAddress.Name, Phone: order.ShippingAddress.Phone}
	if meta.Name == "" {
		meta.Name = "Guest"
	}
	if user != nil {
		userID := user.ID
		meta = model.MetaUser{ID: &userID, Name: user.FullName, Email: user.Email, Phone: user.Phone}
	}
	if meta.Name != "" {
		actor = meta.Name
	} else if user != nil && user.Email != "" {
		actor = user.Email
	}

	metaItems := make([]model.MetaItem, len(order.Items))
	for i, it := range order.Items {
		metaItems[i] = model.MetaItem{
			Title:     it.Title,
			ProductID: it.ProductID,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}

	methodNote := ""
	if order.PaymentMethod == "cod" {
		methodNote = " (COD)"
	}

	notification := &model.Notification{
		Type:    model.NotificationTypeOrder,
		Message: fmt.Sprintf("%s placed a new order%s (%s)", actor, methodNote, order.ID),
		UserID:  order.UserID,
		Meta: &model.OrderMeta{
			OrderID:         order.ID,
			User:            meta,
			Items:           metaItems,
			TotalAmount:     order.TotalAmount,
			ShippingAddress: order.ShippingAddress,
			PaymentMethod:   order.PaymentMethod,
		},
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order notification")
	}
}

// ListMine retrieves the caller's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// ListAll retrieves every order, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// RecentItems flattens the latest orders into per-line-item records for the
// admin dashboard, resolving user references to display names.
func (s *orderService) RecentItems(ctx context.Context, limit int) ([]model.RecentOrderItem, error) {
	if limit < 1 {
		limit = DefaultRecentOrderLimit
	}

	orders, err := s.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	actors := make(map[uuid.UUID]*model.OrderActor)
	items := make([]model.RecentOrderItem, 0, len(orders))
	for _, o := range orders {
		var orderedBy *model.OrderActor
		if o.UserID != nil {
			actor, ok := actors[*o.UserID]
			if !ok {
				actor = s.resolveActor(ctx, *o.UserID)
				actors[*o.UserID] = actor
			}
			orderedBy = actor
		}

		for _, it := range o.Items {
			items = append(items, model.RecentOrderItem{
				OrderID:         o.ID,
				ProductID:       it.ProductID,
				Title:           it.Title,
				Price:           it.Price,
				Img:             it.Img,
				Images:          it.Images,
				Quantity:        it.Quantity,
				OrderedAt:       o.CreatedAt,
				OrderedBy:       orderedBy,
				ShippingAddress: o.ShippingAddress,
			})
		}
	}

	return items, nil
}

// resolveActor looks up display details for an order's user. A vanished or
// unreadable user degrades to nil rather than failing the listing.
func (s *orderService) resolveActor(ctx context.Context, userID uuid.UUID) *model.OrderActor {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to resolve order actor")
		return nil
	}
	if user == nil {
		return nil
	}
	return &model.OrderActor{ID: user.ID, Name: user.FullName, Email: user.Email}
}

// UpdateStatus overwrites an order's status. Conventional values are
// placed, shipped, delivered and cancelled, but arbitrary strings are
// accepted.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if status == "" {
		return nil, model.ErrMissingStatus
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", status).
		Msg("order status updated")

	return updated, nil
}

// Delete removes an order and returns the deleted record.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	if deleted == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")

	return deleted, nil
}
