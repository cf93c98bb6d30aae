package catalog

import (
	"time"

	"github.com/gomart/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    int64           `json:"category_id"`
	SupplierID    int64           `json:"supplier_id"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

// UpdateProductRequest represents a request to update a product's
// descriptive fields and price. Stock is not writable here; it only moves
// through order confirmation and cancellation.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// CreateDiscountRequest represents a request to create a discount
type CreateDiscountRequest struct {
	ProductID       int64           `json:"product_id"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierResponse represents a supplier in responses
type SupplierResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    int64           `json:"category_id"`
	SupplierID    int64           `json:"supplier_id"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DiscountResponse represents a discount in responses
type DiscountResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

func toCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toDiscountResponse(d *catalog.Discount) DiscountResponse {
	return DiscountResponse{
		ID:              d.ID,
		ProductID:       d.ProductID,
		Description:     d.Description,
		DiscountPercent: d.DiscountPercent,
	}
}
