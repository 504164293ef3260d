package rendering

import (
	"io"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/pkg/utils"
)

const (
	ChartLine = "line"
	ChartBar  = "bar"
	ChartPie  = "pie"
)

// ChartRenderer produz especificações de gráfico no formato do Chart.js
type ChartRenderer struct{}

type ChartDocument struct {
	Empty       bool        `json:"empty"`
	Message     string      `json:"message,omitempty"`
	KPIs        []KPICard   `json:"kpis"`
	Charts      []ChartSpec `json:"charts"`
	RecentSales Table       `json:"recent_sales"`
}

type KPICard struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type ChartSpec struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Labels  []string       `json:"labels"`
	Dataset Dataset        `json:"dataset"`
	Options map[string]any `json:"options,omitempty"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Fill  bool      `json:"fill,omitempty"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (ChartRenderer) ContentType() string {
	return "application/json"
}

func (r ChartRenderer) Render(w io.Writer, report *domain.SalesReport) error {
	return json.NewEncoder(w).Encode(r.Build(report))
}

// Build monta o documento sem serializar; útil para quem já tem um encoder próprio
func (ChartRenderer) Build(report *domain.SalesReport) ChartDocument {
	empty := report.IsEmpty()
	report = normalize(report)

	doc := ChartDocument{
		Empty:       empty,
		KPIs:        kpiCards(report.KPIs),
		Charts:      []ChartSpec{},
		RecentSales: recentTable(report.RecentSales),
	}

	if empty {
		doc.Message = EmptyMessage
		return doc
	}

	doc.Charts = append(doc.Charts,
		monthlyChart(report.MonthlyRevenue),
		leaderboardChart(report.TopProducts),
		categoryChart(report.Categories),
	)

	return doc
}

func kpiCards(kpis domain.KPIs) []KPICard {
	top := "-"
	if kpis.TopProduct != nil {
		top = productLabel(*kpis.TopProduct)
	}

	return []KPICard{
		{ID: "total_revenue", Label: "Receita total", Value: kpis.TotalRevenue.StringFixed(2)},
		{ID: "total_sales_count", Label: "Vendas", Value: utils.FormatInt(kpis.TotalSalesCount)},
		{ID: "avg_order_value", Label: "Ticket médio", Value: kpis.AvgOrderValue.StringFixed(2)},
		{ID: "top_product", Label: "Produto destaque", Value: top},
	}
}

func monthlyChart(series []domain.MonthlyRevenue) ChartSpec {
	spec := ChartSpec{
		ID:      "monthly_revenue",
		Type:    ChartLine,
		Title:   "Receita mensal",
		Labels:  make([]string, 0, len(series)),
		Dataset: Dataset{Label: "Receita", Data: make([]float64, 0, len(series)), Fill: true},
	}
	for _, point := range series {
		spec.Labels = append(spec.Labels, point.Month)
		spec.Dataset.Data = append(spec.Dataset.Data, utils.Money(point.Revenue))
	}
	return spec
}

// leaderboardChart mantém a ordem crescente recebida; com indexAxis y o maior fica no topo
func leaderboardChart(products []domain.ProductRevenue) ChartSpec {
	spec := ChartSpec{
		ID:      "top_products",
		Type:    ChartBar,
		Title:   "Produtos com maior receita",
		Labels:  make([]string, 0, len(products)),
		Dataset: Dataset{Label: "Receita", Data: make([]float64, 0, len(products))},
		Options: map[string]any{"indexAxis": "y"},
	}
	for _, p := range products {
		spec.Labels = append(spec.Labels, productLabel(p.Name))
		spec.Dataset.Data = append(spec.Dataset.Data, utils.Money(p.Revenue))
	}
	return spec
}

func categoryChart(categories []domain.CategoryRevenue) ChartSpec {
	spec := ChartSpec{
		ID:      "categories",
		Type:    ChartPie,
		Title:   "Receita por categoria",
		Labels:  make([]string, 0, len(categories)),
		Dataset: Dataset{Label: "Receita", Data: make([]float64, 0, len(categories))},
	}
	for _, c := range categories {
		spec.Labels = append(spec.Labels, categoryLabel(c.Category))
		spec.Dataset.Data = append(spec.Dataset.Data, utils.Money(c.Revenue))
	}
	return spec
}

var recentColumns = []string{"Data", "Produto", "Categoria", "Quantidade", "Total"}

func recentRows(entries []*domain.LedgerEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.OrderDate.String(),
			productNameLabel(e.ProductName),
			categoryLabel(e.Category),
			utils.FormatInt(e.Quantity),
			e.TotalSales.StringFixed(2),
		})
	}
	return rows
}

func recentTable(entries []*domain.LedgerEntry) Table {
	return Table{Columns: recentColumns, Rows: recentRows(entries)}
}
