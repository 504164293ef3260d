package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Category  *string         `json:"category"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Category *string         `json:"category" validate:"omitempty,max=80"`
	Price    decimal.Decimal `json:"price" validate:"gte=0,lte=9999999999.99"`
}

// UpdateProductRequest altera preço e categoria; vendas já registradas não são afetadas
type UpdateProductRequest struct {
	ID       int              `json:"-" validate:"required,gt=0"`
	Category *string          `json:"category" validate:"omitempty,max=80"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,gte=0,lte=9999999999.99"`
}
