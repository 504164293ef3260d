package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Limites das colunas sales.quantity (INTEGER) e sales.total_sales (NUMERIC(14,2))
const MaxQuantity = 2147483647

var MaxSaleTotal = decimal.RequireFromString("999999999999.99")

// Sale é imutável depois de gravada: TotalSales é congelado no momento do registro
type Sale struct {
	ID         int64           `json:"id"`
	UserID     int             `json:"user_id"`
	OrderDate  Date            `json:"order_date"`
	ProductID  int             `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalSales decimal.Decimal `json:"total_sales"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LedgerEntry é uma venda com nome e categoria do produto resolvidos para exibição.
// Os ponteiros ficam nil quando o produto referenciado não existe mais.
type LedgerEntry struct {
	Sale
	ProductName *string `json:"product_name"`
	Category    *string `json:"category"`
}

// RecordSaleInput é a entrada do registro de venda, ainda não validada
type RecordSaleInput struct {
	ProductID int    `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=2147483647"`
	OrderDate string `json:"order_date" validate:"required"`
}
