package catalog

import "github.com/shopspring/decimal"

// Product is the normalized shape of one row in the external product table.
// The external ledger is the source of truth; this layer never writes
// product rows.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Unit        string          `json:"unit"`
}

// Category is one option of the categorical "type" field, read from the
// product table's field metadata rather than from row data.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// Page is one page of catalog search results.
type Page struct {
	Products      []Product `json:"products"`
	HasMore       bool      `json:"has_more"`
	NextPageToken string    `json:"next_page_token"`
}
