package catalog

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	productsResponse struct {
		Products []product `json:"products"`
		Total    int       `json:"total"`
	}

	product struct {
		ID                 domain.ProductID `json:"id"`
		Title              string           `json:"title"`
		Description        string           `json:"description"`
		Category           string           `json:"category"`
		Brand              string           `json:"brand"`
		Thumbnail          string           `json:"thumbnail"`
		Images             []string         `json:"images"`
		Price              decimal.Decimal  `json:"price"`
		Stock              int              `json:"stock"`
		Rating             float64          `json:"rating"`
		DiscountPercentage float64          `json:"discountPercentage"`
	}
)

func (p product) toDomain() domain.Product {
	images := p.Images
	if len(images) == 0 {
		images = []string{}
		if p.Thumbnail != "" {
			images = append(images, p.Thumbnail)
		}
	}

	return domain.Product{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Category:           p.Category,
		Brand:              p.Brand,
		Thumbnail:          p.Thumbnail,
		Images:             images,
		Price:              p.Price,
		Stock:              p.Stock,
		Rating:             p.Rating,
		DiscountPercentage: p.DiscountPercentage,
	}
}
