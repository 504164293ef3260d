package domain

import "github.com/shopspring/decimal"

// MonthlyRevenue é um ponto da série mensal; só existem meses com ao menos uma venda
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductRevenue agrupa vendas pelo nome do produto. Name vazio indica produto removido.
type ProductRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CategoryRevenue agrupa vendas por categoria. Category nil é o grupo sem categoria.
type CategoryRevenue struct {
	Category *string         `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type KPIs struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalSalesCount int             `json:"total_sales_count"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	TopProduct      *string         `json:"top_product"` // nil sem vendas ou quando lidera o grupo de produtos removidos
}

// SalesReport é tudo o que um renderizador precisa para montar o painel
type SalesReport struct {
	MonthlyRevenue []MonthlyRevenue  `json:"monthly_revenue"`
	TopProducts    []ProductRevenue  `json:"top_products"`
	Categories     []CategoryRevenue `json:"categories"`
	KPIs           KPIs              `json:"kpis"`
	RecentSales    []*LedgerEntry    `json:"recent_sales"`
}

func (r *SalesReport) IsEmpty() bool {
	return r == nil || r.KPIs.TotalSalesCount == 0
}
