package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/bitable"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

type orderTableStub struct {
	products    map[string]bitable.Record
	searchPages []bitable.SearchResult
	batchRows   []bitable.RecordFields
}

func (s *orderTableStub) ProductTable() string { return "tblproducts" }
func (s *orderTableStub) OrderTable() string   { return "tblorders" }

func (s *orderTableStub) GetRecord(_ context.Context, _, recordID string) (*bitable.Record, error) {
	rec, ok := s.products[recordID]
	if !ok {
		return nil, &bitable.APIError{Code: 254404, Msg: "RecordIdNotFound"}
	}
	return &rec, nil
}

func (s *orderTableStub) BatchCreateRecords(_ context.Context, _ string, records []bitable.RecordFields) ([]bitable.Record, error) {
	s.batchRows = records
	return make([]bitable.Record, len(records)), nil
}

func (s *orderTableStub) SearchRecords(context.Context, string, *bitable.SearchRequest) (*bitable.SearchResult, error) {
	if len(s.searchPages) == 0 {
		return &bitable.SearchResult{}, nil
	}
	page := s.searchPages[0]
	s.searchPages = s.searchPages[1:]
	return &page, nil
}

type addressRepoStub struct {
	address *partner.Address
}

func (s *addressRepoStub) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Address, error) {
	if s.address == nil || s.address.UserID != userID || s.address.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.address, nil
}

func (s *addressRepoStub) FindAllForUser(context.Context, uuid.UUID) ([]partner.Address, error) {
	return nil, nil
}
func (s *addressRepoStub) Save(context.Context, *partner.Address) error { return nil }

func (s *addressRepoStub) DeleteForUser(context.Context, uuid.UUID, uuid.UUID) error { return nil }

// identityStub injects JWT claims the way the auth middleware would
func identityStub(userID uuid.UUID, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTUsernameKey, username)
		c.Next()
	}
}

func newOrderTestRouter(t *testing.T, stub *orderTableStub) (*gin.Engine, uuid.UUID, *partner.Address) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	address, err := partner.NewAddress(userID, "Wang Fang", "13800000000", "1 Market St")
	require.NoError(t, err)

	svc := orderapp.NewOrderService(stub, &addressRepoStub{address: address})
	h := NewOrderHandler(svc)

	r := gin.New()
	r.Use(identityStub(userID, "wang_fang"))
	h.RegisterRoutes(r.Group("/api"))
	return r, userID, address
}

func postOrder(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandlerCreate(t *testing.T) {
	stub := &orderTableStub{products: map[string]bitable.Record{
		"recp1": {Fields: map[string]any{"name": "Gala apple", "price": 12.5, "stock": float64(5)}},
	}}
	r, _, address := newOrderTestRouter(t, stub)

	w := postOrder(t, r, gin.H{
		"addressId": address.ID.String(),
		"items":     []gin.H{{"id": "recp1", "quantity": 2}},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	orderID := resp.Data.(map[string]any)["order_id"].(string)
	_, err := uuid.Parse(orderID)
	assert.NoError(t, err)
	require.Len(t, stub.batchRows, 1)
}

func TestOrderHandlerCreateInsufficientStock(t *testing.T) {
	stub := &orderTableStub{products: map[string]bitable.Record{
		"recp1": {Fields: map[string]any{"name": "Gala apple", "price": 12.5, "stock": float64(1)}},
	}}
	r, _, address := newOrderTestRouter(t, stub)

	w := postOrder(t, r, gin.H{
		"addressId": address.ID.String(),
		"items":     []gin.H{{"id": "recp1", "quantity": 2}},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Empty(t, stub.batchRows)
}

func TestOrderHandlerCreateForeignAddress(t *testing.T) {
	stub := &orderTableStub{products: map[string]bitable.Record{
		"recp1": {Fields: map[string]any{"price": 12.5, "stock": float64(5)}},
	}}
	r, _, _ := newOrderTestRouter(t, stub)

	w := postOrder(t, r, gin.H{
		"addressId": uuid.NewString(),
		"items":     []gin.H{{"id": "recp1", "quantity": 1}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, stub.batchRows)
}

func TestOrderHandlerCreateEmptyItems(t *testing.T) {
	r, _, address := newOrderTestRouter(t, &orderTableStub{})

	w := postOrder(t, r, gin.H{
		"addressId": address.ID.String(),
		"items":     []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandlerList(t *testing.T) {
	stub := &orderTableStub{searchPages: []bitable.SearchResult{{
		Items: []bitable.Record{
			{Fields: map[string]any{
				"order_id":   "ord-1",
				"product_id": "recp1",
				"status":     "已发货",
				"username":   "wang_fang",
				"quantity":   float64(2),
				"unit_price": 12.5,
				"created_at": float64(1756400000000),
			}},
		},
	}}}
	r, _, _ := newOrderTestRouter(t, stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	orders := resp.Data.([]any)
	require.Len(t, orders, 1)

	first := orders[0].(map[string]any)
	assert.Equal(t, "ord-1", first["id"])
	assert.Equal(t, "shipped", first["status"])
	assert.Equal(t, 25.0, first["total"])
}

func TestOrderHandlerGetNotFound(t *testing.T) {
	r, _, _ := newOrderTestRouter(t, &orderTableStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/ord-unknown", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
