package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/storefront/backend/internal/application/partner"
	"github.com/storefront/backend/internal/domain/partner"
)

// AddressHandler serves the authenticated user's address book
type AddressHandler struct {
	BaseHandler
	addressService *partnerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *partnerapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// AddressRequest is the create/update body for an address
type AddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,max=30"`
	Address       string `json:"address" binding:"required,max=500"`
	IsDefault     bool   `json:"is_default"`
}

// AddressResponse is one address in API responses
type AddressResponse struct {
	ID            string    `json:"id"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

func toAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{
		ID:            a.ID.String(),
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Address:       a.Address,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
	}
}

// List handles GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, toAddressResponse(&addresses[i]))
	}
	h.Success(c, out)
}

// Create handles POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req.RecipientName, req.Phone, req.Address, req.IsDefault)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toAddressResponse(address))
}

// Update handles PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address id")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req.RecipientName, req.Phone, req.Address, req.IsDefault)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAddressResponse(address))
}

// Delete handles DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address id")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers address routes on the API group
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses")
	addresses.GET("", h.List)
	addresses.POST("", h.Create)
	addresses.PUT("/:id", h.Update)
	addresses.DELETE("/:id", h.Delete)
}
