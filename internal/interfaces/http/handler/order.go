package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/order"
)

// OrderHandler serves order creation and history
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest is the order creation body
type CreateOrderRequest struct {
	AddressID string                   `json:"addressId" binding:"required,uuid"`
	Items     []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested order line
type CreateOrderItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderResponse carries the generated order identifier
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// OrderItemResponse is one line of an order aggregate
type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// OrderResponse is one derived order aggregate
type OrderResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Items     []OrderItemResponse `json:"items"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Recipient string              `json:"recipient"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
}

func toOrderResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Amount:    item.Amount.InexactFloat64(),
		})
	}
	return OrderResponse{
		ID:        o.ID,
		Status:    string(o.Status),
		Items:     items,
		Total:     o.Total.InexactFloat64(),
		CreatedAt: o.CreatedAt,
		Recipient: o.Address.RecipientName,
		Phone:     o.Address.Phone,
		Address:   o.Address.Address,
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		h.BadRequest(c, "Invalid address id")
		return
	}

	items := make([]orderapp.ItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderapp.ItemParams{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := h.orderService.Create(c.Request.Context(), orderapp.CreateParams{
		UserID:    userID,
		Username:  getUsername(c),
		AddressID: addressID,
		Items:     items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CreateOrderResponse{OrderID: orderID})
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), getUsername(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	h.Success(c, out)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orderService.GetByID(c.Request.Context(), getUsername(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(*o))
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
}
