package customers

import (
	"time"

	"github.com/gomart/backend/internal/domain/customer"
)

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateContactRequest represents a request to change a customer's contact details
type UpdateContactRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// AddCartItemRequest represents a request to stage a product in a cart
type AddCartItemRequest struct {
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

// AddReviewRequest represents a request to review a product
type AddReviewRequest struct {
	CustomerID int64  `json:"customer_id"`
	ProductID  int64  `json:"product_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// CustomerResponse represents a customer in responses
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItemResponse represents a cart row in responses
type CartItemResponse struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

// ReviewResponse represents a review in responses
type ReviewResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCartItemResponse(item *customer.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		CustomerID: item.CustomerID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
	}
}

func toReviewResponse(r *customer.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		ProductID:  r.ProductID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
