package httphandler

import "github.com/niksmo/storefront/internal/core/domain"

type (
	ProductsResponse struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
	}

	CategoriesResponse struct {
		Categories []string `json:"categories"`
	}

	ErrorResponse struct {
		Error    string   `json:"error"`
		Problems []string `json:"problems,omitempty"`
	}
)

type (
	AddItemRequest struct {
		ProductID domain.ProductID `json:"product_id"`
		Quantity  *int             `json:"quantity"`
	}

	UpdateQuantityRequest struct {
		Quantity *int `json:"quantity"`
	}
)

type CheckoutRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (r CheckoutRequest) toDomain() domain.Contact {
	return domain.Contact{
		Name:    r.Name,
		Email:   r.Email,
		Address: r.Address,
		Phone:   r.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
