package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductHandler serves the read-only product catalog
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductResponse is one product in API responses
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Unit        string  `json:"unit"`
}

// ProductPageResponse is one page of catalog search results
type ProductPageResponse struct {
	Products  []ProductResponse `json:"products"`
	HasMore   bool              `json:"has_more"`
	PageToken string            `json:"page_token,omitempty"`
}

// CategoryResponse is one product category
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color"`
}

func toProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		Image:       p.Image,
		Description: p.Description,
		Type:        p.Type,
		Unit:        p.Unit,
	}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := catalogapp.SearchParams{
		PageToken: c.Query("pageToken"),
		Query:     c.Query("q"),
		Category:  c.Query("category"),
	}

	// A non-numeric pageSize falls back to the default; an explicit
	// non-positive one is a caller error.
	if raw := c.Query("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			if n <= 0 {
				h.BadRequest(c, "pageSize must be positive")
				return
			}
			params.PageSize = n
		}
	}

	page, err := h.productService.Search(c.Request.Context(), params)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products := make([]ProductResponse, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, toProductResponse(p))
	}

	h.Success(c, ProductPageResponse{
		Products:  products,
		HasMore:   page.HasMore,
		PageToken: page.NextPageToken,
	})
}

// ListCategories handles GET /products/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryResponse(cat))
	}
	h.Success(c, out)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(*product))
}

// RegisterRoutes registers product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/categories", h.ListCategories)
	products.GET("/:id", h.Get)
}
