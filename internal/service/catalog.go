package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// Create adds a product to the catalog. The legacy singular img field and
// the images list back-fill each other so older clients keep working.
func (s *catalogService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if req.Title == "" {
		return nil, model.NewValidationError("title is required")
	}
	if req.Price == "" {
		return nil, model.NewValidationError("price is required")
	}
	if len(req.Images) > model.MaxProductImages {
		return nil, model.NewValidationError(fmt.Sprintf("a product can contain at most %d images", model.MaxProductImages))
	}

	images := req.Images
	img := req.Img
	if len(images) == 0 && img != "" {
		images = []string{img}
	}
	if img == "" && len(images) > 0 {
		img = images[0]
	}
	if images == nil {
		images = []string{}
	}

	product := &model.Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Price:       req.Price,
		Images:      images,
		Img:         img,
		Description: req.Description,
		Seller:      req.Seller,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("title", product.Title).
		Msg("product created")

	return product, nil
}

// List retrieves products with pagination, newest first.
func (s *catalogService) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// GetByID retrieves a single product.
func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Delete removes a product. Items already snapshotted into orders are
// unaffected.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if deleted == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return deleted, nil
}
