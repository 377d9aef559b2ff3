package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/bitable"
)

// Order table field names in the external ledger
const (
	fieldOrderID   = "order_id"
	fieldProductID = "product_id"
	fieldStatus    = "status"
	fieldUsername  = "username"
	fieldQuantity  = "quantity"
	fieldUnitPrice = "unit_price"
	fieldRecipient = "recipient"
	fieldPhone     = "phone"
	fieldAddress   = "address"
	fieldCreatedAt = "created_at"
)

// listPageSize is the page size used when draining a user's order rows
const listPageSize = 500

// TableClient is the slice of the bitable client the order service needs
type TableClient interface {
	ProductTable() string
	OrderTable() string
	SearchRecords(ctx context.Context, table string, req *bitable.SearchRequest) (*bitable.SearchResult, error)
	GetRecord(ctx context.Context, table, recordID string) (*bitable.Record, error)
	BatchCreateRecords(ctx context.Context, table string, records []bitable.RecordFields) ([]bitable.Record, error)
}

// OrderService writes orders to the external ledger as flat line-item
// rows and reconstructs order aggregates on read.
type OrderService struct {
	client    TableClient
	addresses partner.AddressRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(client TableClient, addresses partner.AddressRepository) *OrderService {
	return &OrderService{client: client, addresses: addresses}
}

// ItemParams is one requested order line
type ItemParams struct {
	ProductID string
	Quantity  int64
}

// CreateParams are the inputs to order creation
type CreateParams struct {
	UserID    uuid.UUID
	Username  string
	AddressID uuid.UUID
	Items     []ItemParams
}

// validatedItem is one order line after stock check and price snapshot
type validatedItem struct {
	productID string
	quantity  int64
	unitPrice decimal.Decimal
}

// Create validates the request, snapshots current unit prices and writes
// one row per item in a single batch call, all rows sharing a freshly
// generated order id. Validation is strictly ordered: request shape,
// address ownership, then per-item product existence and stock, so no
// external write happens for an invalid request. Stock is checked against
// the live row without locking; a concurrent order can still win the
// race, which is an accepted limitation of the ledger.
func (s *OrderService) Create(ctx context.Context, params CreateParams) (string, error) {
	if params.Username == "" {
		return "", shared.ErrUnauthorized
	}
	if len(params.Items) == 0 {
		return "", shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}
	if params.AddressID == uuid.Nil {
		return "", shared.NewDomainError("INVALID_INPUT", "Shipping address is required")
	}
	for _, item := range params.Items {
		if item.ProductID == "" {
			return "", shared.NewDomainError("INVALID_INPUT", "Item product id is required")
		}
		if item.Quantity <= 0 {
			return "", shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
		}
	}

	address, err := s.addresses.FindByIDForUser(ctx, params.UserID, params.AddressID)
	if err != nil {
		return "", err
	}

	validated := make([]validatedItem, 0, len(params.Items))
	for _, item := range params.Items {
		rec, err := s.client.GetRecord(ctx, s.client.ProductTable(), item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrExternalNotFound) {
				return "", shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", item.ProductID))
			}
			return "", err
		}

		stock := bitable.Integer(rec.Fields["stock"])
		if stock < item.Quantity {
			name := bitable.Text(rec.Fields["name"])
			if name == "" {
				name = item.ProductID
			}
			return "", shared.NewInsufficientStockError(name, stock, item.Quantity)
		}

		validated = append(validated, validatedItem{
			productID: item.ProductID,
			quantity:  item.Quantity,
			unitPrice: decimal.NewFromFloat(bitable.Number(rec.Fields["price"])),
		})
	}

	orderID := uuid.NewString()
	now := time.Now()

	rows := make([]bitable.RecordFields, 0, len(validated))
	for _, item := range validated {
		price, _ := item.unitPrice.Float64()
		rows = append(rows, bitable.RecordFields{Fields: map[string]any{
			fieldOrderID:   orderID,
			fieldProductID: item.productID,
			fieldStatus:    order.ExternalStatusPlaced,
			fieldUsername:  params.Username,
			fieldQuantity:  item.quantity,
			fieldUnitPrice: price,
			fieldRecipient: address.RecipientName,
			fieldPhone:     address.Phone,
			fieldAddress:   address.Address,
			fieldCreatedAt: now.UnixMilli(),
		}})
	}

	if _, err := s.client.BatchCreateRecords(ctx, s.client.OrderTable(), rows); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrOrderCreation, err)
	}

	return orderID, nil
}

// List returns all order aggregates of a user, newest first. Rows are
// drained page by page and grouped by order id; the grouping preserves
// the sorted sequence.
func (s *OrderService) List(ctx context.Context, username string) ([]order.Order, error) {
	if username == "" {
		return nil, shared.ErrUnauthorized
	}

	rows, err := s.searchRows(ctx, []bitable.FilterCondition{{
		FieldName: fieldUsername,
		Operator:  "is",
		Value:     []string{username},
	}})
	if err != nil {
		return nil, err
	}

	return order.Group(rows), nil
}

// GetByID returns one order aggregate. An order id belonging to another
// user is indistinguishable from a missing one.
func (s *OrderService) GetByID(ctx context.Context, username, orderID string) (*order.Order, error) {
	if username == "" {
		return nil, shared.ErrUnauthorized
	}
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order id is required")
	}

	rows, err := s.searchRows(ctx, []bitable.FilterCondition{
		{FieldName: fieldOrderID, Operator: "is", Value: []string{orderID}},
		{FieldName: fieldUsername, Operator: "is", Value: []string{username}},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	orders := order.Group(rows)
	return &orders[0], nil
}

// searchRows drains every matching row of the order table, newest first
func (s *OrderService) searchRows(ctx context.Context, conditions []bitable.FilterCondition) ([]order.LineItem, error) {
	var rows []order.LineItem
	pageToken := ""

	for {
		result, err := s.client.SearchRecords(ctx, s.client.OrderTable(), &bitable.SearchRequest{
			FieldNames: []string{
				fieldOrderID, fieldProductID, fieldStatus, fieldUsername,
				fieldQuantity, fieldUnitPrice, fieldRecipient, fieldPhone,
				fieldAddress, fieldCreatedAt,
			},
			Filter:    &bitable.Filter{Conjunction: "and", Conditions: conditions},
			Sort:      []bitable.Sort{{FieldName: fieldCreatedAt, Desc: true}},
			PageSize:  listPageSize,
			PageToken: pageToken,
		})
		if err != nil {
			return nil, err
		}

		for _, rec := range result.Items {
			rows = append(rows, mapRecordToLineItem(rec))
		}

		if !result.HasMore || result.PageToken == "" {
			return rows, nil
		}
		pageToken = result.PageToken
	}
}

// mapRecordToLineItem converts one ledger row into a line item. Fields
// are unwrapped defensively; a malformed row yields zero values.
func mapRecordToLineItem(rec bitable.Record) order.LineItem {
	return order.LineItem{
		OrderID:       bitable.Text(rec.Fields[fieldOrderID]),
		ProductID:     bitable.Text(rec.Fields[fieldProductID]),
		Status:        bitable.Text(rec.Fields[fieldStatus]),
		Username:      bitable.Text(rec.Fields[fieldUsername]),
		Quantity:      bitable.Integer(rec.Fields[fieldQuantity]),
		UnitPrice:     decimal.NewFromFloat(bitable.Number(rec.Fields[fieldUnitPrice])),
		RecipientName: bitable.Text(rec.Fields[fieldRecipient]),
		Phone:         bitable.Text(rec.Fields[fieldPhone]),
		Address:       bitable.Text(rec.Fields[fieldAddress]),
		CreatedAt:     time.UnixMilli(bitable.Integer(rec.Fields[fieldCreatedAt])),
	}
}
