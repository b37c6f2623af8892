package service

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogServiceForTest(productRepo *MockProductRepository) CatalogService {
	return NewCatalogService(productRepo, zerolog.Nop())
}

func TestCatalogService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		mockProductRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

		service := newCatalogServiceForTest(mockProductRepo)

		product, err := service.Create(ctx, model.CreateProductRequest{
			Title:  "Widget",
			Price:  "10.00",
			Images: []string{"a.png", "b.png"},
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, "a.png", product.Img)
		mockProductRepo.AssertExpectations(t)
	})

	t.Run("singular img back-fills images", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		mockProductRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

		service := newCatalogServiceForTest(mockProductRepo)

		product, err := service.Create(ctx, model.CreateProductRequest{
			Title: "Widget",
			Price: "10.00",
			Img:   "a.png",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.png"}, product.Images)
	})

	t.Run("missing title", func(t *testing.T) {
		service := newCatalogServiceForTest(new(MockProductRepository))

		_, err := service.Create(ctx, model.CreateProductRequest{Price: "10.00"})

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.KindValidation, domainErr.Kind)
	})

	t.Run("too many images", func(t *testing.T) {
		images := make([]string, model.MaxProductImages+1)
		for i := range images {
			images[i] = "img.png"
		}

		service := newCatalogServiceForTest(new(MockProductRepository))

		_, err := service.Create(ctx, model.CreateProductRequest{Title: "Widget", Price: "10", Images: images})

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.KindValidation, domainErr.Kind)
	})
}

func TestCatalogService_List_ClampsLimit(t *testing.T) {
	ctx := context.Background()

	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetAll", ctx, 20, 0).Return([]model.Product{}, nil)

	service := newCatalogServiceForTest(mockProductRepo)

	_, err := service.List(ctx, 1000, -5)

	require.NoError(t, err)
	mockProductRepo.AssertExpectations(t)
}

func TestCatalogService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("GetByID", ctx, id).Return(nil, nil)

	service := newCatalogServiceForTest(mockProductRepo)

	_, err := service.GetByID(ctx, id)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockProductRepo := new(MockProductRepository)
	mockProductRepo.On("Delete", ctx, id).Return(nil, nil)

	service := newCatalogServiceForTest(mockProductRepo)

	_, err := service.Delete(ctx, id)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}
