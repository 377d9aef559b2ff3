package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the stable order status exposed by this layer. The external
// ledger stores a free-form vocabulary; MapExternalStatus folds it into
// this enum.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusReceived   Status = "received"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// External status vocabulary as stored in the ledger's status column.
const (
	ExternalStatusUnpaid    = "待付款"
	ExternalStatusPlaced    = "待发货"
	ExternalStatusShipped   = "已发货"
	ExternalStatusReceived  = "已收货"
	ExternalStatusCompleted = "已完成"
	ExternalStatusCancelled = "已取消"
)

// MapExternalStatus maps the external status vocabulary to the stable enum.
// It is total: any unrecognized value maps to StatusPending rather than
// failing, so a new back-office status never breaks reads.
func MapExternalStatus(external string) Status {
	switch external {
	case ExternalStatusUnpaid:
		return StatusPending
	case ExternalStatusPlaced:
		return StatusProcessing
	case ExternalStatusShipped:
		return StatusShipped
	case ExternalStatusReceived:
		return StatusReceived
	case ExternalStatusCompleted:
		return StatusCompleted
	case ExternalStatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// LineItem is one flat row of the external order table: one product within
// one order. The ledger has no notion of "order"; rows written by one
// order creation share a generated order identifier.
type LineItem struct {
	OrderID       string
	ProductID     string
	Status        string // external vocabulary
	Username      string
	Quantity      int64
	UnitPrice     decimal.Decimal // snapshotted at order time
	RecipientName string
	Phone         string
	Address       string
	CreatedAt     time.Time
}

// Amount returns the line total at the snapshotted unit price.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// Item is one line of the derived order aggregate.
type Item struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// ShippingAddress is the denormalized address snapshot carried by every
// line item of an order.
type ShippingAddress struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// Order is the derived aggregate view over all line items sharing one
// order identifier. It is never persisted; every read re-derives it.
type Order struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Address   ShippingAddress `json:"address"`
}

// Group folds a sequence of line items into order aggregates, preserving
// the order in which order identifiers first appear. The first row seen
// for an identifier seeds the aggregate's status, address and creation
// time; every row appends one item and accumulates the total.
func Group(rows []LineItem) []Order {
	index := make(map[string]int, len(rows))
	orders := make([]Order, 0, len(rows))

	for _, row := range rows {
		i, seen := index[row.OrderID]
		if !seen {
			orders = append(orders, Order{
				ID:        row.OrderID,
				Status:    MapExternalStatus(row.Status),
				Total:     decimal.Zero,
				CreatedAt: row.CreatedAt,
				Address: ShippingAddress{
					RecipientName: row.RecipientName,
					Phone:         row.Phone,
					Address:       row.Address,
				},
			})
			i = len(orders) - 1
			index[row.OrderID] = i
		}

		amount := row.Amount()
		orders[i].Items = append(orders[i].Items, Item{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Amount:    amount,
		})
		orders[i].Total = orders[i].Total.Add(amount)
	}

	return orders
}
