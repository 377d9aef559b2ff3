package catalog

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/bitable"
)

// defaultPageSize is used when the caller does not specify a page size
const defaultPageSize = 20

// Product table field names in the external ledger
const (
	fieldName        = "name"
	fieldPrice       = "price"
	fieldStock       = "stock"
	fieldImage       = "image"
	fieldDescription = "description"
	fieldType        = "type"
	fieldUnit        = "unit"
)

// TableClient is the slice of the bitable client the catalog service
// needs. Isolating it keeps the external store swappable.
type TableClient interface {
	ProductTable() string
	SearchRecords(ctx context.Context, table string, req *bitable.SearchRequest) (*bitable.SearchResult, error)
	GetRecord(ctx context.Context, table, recordID string) (*bitable.Record, error)
	ListFields(ctx context.Context, table string) ([]bitable.Field, error)
}

// ProductService queries the external product catalog
type ProductService struct {
	client TableClient
}

// NewProductService creates a new ProductService
func NewProductService(client TableClient) *ProductService {
	return &ProductService{client: client}
}

// SearchParams are the catalog search inputs. A zero PageSize means the
// caller did not specify one and the default applies; explicit
// non-positive values must be rejected by the caller-facing layer and
// are rejected here too.
type SearchParams struct {
	PageToken string
	PageSize  int
	Query     string // substring match on product name
	Category  string // exact match on product type
}

// Search returns one filtered page of the catalog. Query and Category
// are optional AND-ed conditions; absence of both yields an unfiltered
// page. The pagination cursor is forwarded to the external service
// unchanged.
func (s *ProductService) Search(ctx context.Context, params SearchParams) (*catalog.Page, error) {
	if params.PageSize < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Page size must be positive")
	}
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	req := &bitable.SearchRequest{
		FieldNames: []string{fieldName, fieldPrice, fieldStock, fieldImage, fieldDescription, fieldType, fieldUnit},
		PageSize:   pageSize,
		PageToken:  params.PageToken,
	}

	var conditions []bitable.FilterCondition
	if params.Query != "" {
		conditions = append(conditions, bitable.FilterCondition{
			FieldName: fieldName,
			Operator:  "contains",
			Value:     []string{params.Query},
		})
	}
	if params.Category != "" {
		conditions = append(conditions, bitable.FilterCondition{
			FieldName: fieldType,
			Operator:  "is",
			Value:     []string{params.Category},
		})
	}
	if len(conditions) > 0 {
		req.Filter = &bitable.Filter{Conjunction: "and", Conditions: conditions}
	}

	result, err := s.client.SearchRecords(ctx, s.client.ProductTable(), req)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(result.Items))
	for _, rec := range result.Items {
		products = append(products, mapRecordToProduct(rec, true))
	}

	return &catalog.Page{
		Products:      products,
		HasMore:       result.HasMore,
		NextPageToken: result.PageToken,
	}, nil
}

// GetByID returns a single product. Detail lookups keep the external
// image URL; only list results route images through the proxy.
func (s *ProductService) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	if id == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product id is required")
	}

	rec, err := s.client.GetRecord(ctx, s.client.ProductTable(), id)
	if err != nil {
		return nil, err
	}

	product := mapRecordToProduct(*rec, false)
	return &product, nil
}

// ListCategories reads the options of the categorical "type" field from
// the table schema. A missing field yields an empty list, never an
// error.
func (s *ProductService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	fields, err := s.client.ListFields(ctx, s.client.ProductTable())
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		if f.FieldName != fieldType || f.Property == nil {
			continue
		}
		categories := make([]catalog.Category, 0, len(f.Property.Options))
		for _, opt := range f.Property.Options {
			categories = append(categories, catalog.Category{
				ID:    opt.ID,
				Name:  opt.Name,
				Color: opt.Color,
			})
		}
		return categories, nil
	}

	return []catalog.Category{}, nil
}

// mapRecordToProduct converts one external row into the normalized
// product shape. Every field is unwrapped defensively: a malformed row
// yields zero values rather than an error.
func mapRecordToProduct(rec bitable.Record, proxyImage bool) catalog.Product {
	att := bitable.FirstAttachment(rec.Fields[fieldImage])

	image := ""
	if proxyImage {
		if att.FileToken != "" {
			image = "/api/image_proxy?file_token=" + url.QueryEscape(att.FileToken)
		}
	} else {
		image = att.URL
	}

	return catalog.Product{
		ID:          rec.RecordID,
		Name:        bitable.Text(rec.Fields[fieldName]),
		Price:       decimal.NewFromFloat(bitable.Number(rec.Fields[fieldPrice])),
		Stock:       bitable.Integer(rec.Fields[fieldStock]),
		Image:       image,
		Description: bitable.Text(rec.Fields[fieldDescription]),
		Type:        bitable.Text(rec.Fields[fieldType]),
		Unit:        bitable.Text(rec.Fields[fieldUnit]),
	}
}
