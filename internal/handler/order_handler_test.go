package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, userID *uuid.UUID, req *model.CheckoutRequest) (*model.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) RecentItems(ctx context.Context, limit int) ([]model.RecentOrderItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecentOrderItem), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func TestOrderHandler_Checkout(t *testing.T) {
	logger := zerolog.Nop()

	productID := uuid.New()
	testOrder := &model.Order{
		ID:            uuid.New(),
		Items:         []model.OrderItem{{ProductID: &productID, Title: "Widget", Price: "10", Quantity: 1}},
		TotalAmount:   decimal.NewFromInt(10),
		Status:        model.StatusPlaced,
		PaymentMethod: "cod",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name: "Success",
			requestBody: &model.CheckoutRequest{
				Items:         []model.CheckoutItem{{Product: &productID, Title: "Widget", Price: "10", Quantity: 1}},
				PaymentMethod: "cod",
			},
			mockReturn:     testOrder,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Empty cart",
			requestBody:    &model.CheckoutRequest{},
			mockError:      model.ErrEmptyCart,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid body",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Service failure",
			requestBody:    &model.CheckoutRequest{Items: []model.CheckoutItem{{Title: "Widget"}}},
			mockError:      errors.New("database down"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("Checkout", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("*model.CheckoutRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			handler := NewOrderHandler(mockService, logger)

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", &body)
			rec := httptest.NewRecorder()

			handler.Checkout(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp struct {
					Message string      `json:"message"`
					Order   model.Order `json:"order"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, testOrder.ID, resp.Order.ID)
				assert.NotEmpty(t, resp.Message)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Checkout_EmptyBody(t *testing.T) {
	logger := zerolog.Nop()

	testOrder := &model.Order{
		ID:          uuid.New(),
		TotalAmount: decimal.NewFromInt(10),
		Status:      model.StatusPlaced,
	}

	// A bare POST with no body selects the cart path, it is not a 400.
	mockService := new(MockOrderService)
	mockService.On("Checkout", mock.Anything, (*uuid.UUID)(nil), &model.CheckoutRequest{}).
		Return(testOrder, nil)

	handler := NewOrderHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", nil)
	rec := httptest.NewRecorder()

	handler.Checkout(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		requestBody    string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			pathID:         orderID.String(),
			requestBody:    `{"status": "shipped"}`,
			mockReturn:     &model.Order{ID: orderID, Status: model.StatusShipped},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Missing status",
			pathID:         orderID.String(),
			requestBody:    `{}`,
			mockError:      model.ErrMissingStatus,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Order not found",
			pathID:         orderID.String(),
			requestBody:    `{"status": "shipped"}`,
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid ID",
			pathID:         "not-a-uuid",
			requestBody:    `{"status": "shipped"}`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("UpdateStatus", mock.Anything, orderID, mock.AnythingOfType("string")).
					Return(tt.mockReturn, tt.mockError)
			}

			handler := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPatch, "/api/order/admin/order/"+tt.pathID, bytes.NewBufferString(tt.requestBody))
			req.SetPathValue("id", tt.pathID)
			rec := httptest.NewRecorder()

			handler.UpdateStatus(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Recent(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	mockService.On("RecentItems", mock.Anything, 5).Return([]model.RecentOrderItem{
		{OrderID: uuid.New(), Title: "Widget", Price: "10", Quantity: 1},
	}, nil)

	handler := NewOrderHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/order/admin/recent-orders?limit=5", nil)
	rec := httptest.NewRecorder()

	handler.Recent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []model.RecentOrderItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Items, 1)
	mockService.AssertExpectations(t)
}
