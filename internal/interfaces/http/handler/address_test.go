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

	partnerapp "github.com/storefront/backend/internal/application/partner"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

type addressBookStub struct {
	byID map[uuid.UUID]*partner.Address
}

func newAddressBookStub() *addressBookStub {
	return &addressBookStub{byID: make(map[uuid.UUID]*partner.Address)}
}

func (s *addressBookStub) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Address, error) {
	a, ok := s.byID[id]
	if !ok || a.UserID != userID {
		return nil, shared.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *addressBookStub) FindAllForUser(_ context.Context, userID uuid.UUID) ([]partner.Address, error) {
	var out []partner.Address
	for _, a := range s.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *addressBookStub) Save(_ context.Context, address *partner.Address) error {
	copied := *address
	s.byID[address.ID] = &copied
	return nil
}

func (s *addressBookStub) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	a, ok := s.byID[id]
	if !ok || a.UserID != userID {
		return shared.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func newAddressTestRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	h := NewAddressHandler(partnerapp.NewAddressService(newAddressBookStub()))

	r := gin.New()
	r.Use(identityStub(userID, "wang_fang"))
	h.RegisterRoutes(r.Group("/api"))
	return r, userID
}

func postAddress(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/addresses", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddressHandlerCreateAndList(t *testing.T) {
	r, _ := newAddressTestRouter(t)

	w := postAddress(t, r, gin.H{
		"recipient_name": "Wang Fang",
		"phone":          "13800000000",
		"address":        "1 Market St",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/addresses", nil))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	addresses := resp.Data.([]any)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Wang Fang", addresses[0].(map[string]any)["recipient_name"])
}

func TestAddressHandlerCreateDefault(t *testing.T) {
	r, _ := newAddressTestRouter(t)

	w := postAddress(t, r, gin.H{
		"recipient_name": "Wang Fang",
		"phone":          "13800000000",
		"address":        "1 Market St",
		"is_default":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	created := resp.Data.(map[string]any)
	assert.Equal(t, true, created["is_default"])

	// The flag can be cleared again through update
	body, err := json.Marshal(gin.H{
		"recipient_name": "Wang Fang",
		"phone":          "13800000000",
		"address":        "1 Market St",
		"is_default":     false,
	})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/addresses/"+created["id"].(string), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	assert.Equal(t, false, resp.Data.(map[string]any)["is_default"])
}

func TestAddressHandlerCreateMissingFields(t *testing.T) {
	r, _ := newAddressTestRouter(t)

	w := postAddress(t, r, gin.H{"phone": "13800000000"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestAddressHandlerDeleteUnknown(t *testing.T) {
	r, _ := newAddressTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/addresses/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}
