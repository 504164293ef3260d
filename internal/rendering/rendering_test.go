package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleReport() *domain.SalesReport {
	date, _ := domain.ParseDate("2024-02-10")

	return &domain.SalesReport{
		MonthlyRevenue: []domain.MonthlyRevenue{
			{Month: "2024-01", Revenue: decimal.RequireFromString("30.00")},
			{Month: "2024-02", Revenue: decimal.RequireFromString("12.50")},
		},
		TopProducts: []domain.ProductRevenue{
			{Name: "", Revenue: decimal.RequireFromString("5.00")},
			{Name: "Gadget", Revenue: decimal.RequireFromString("7.50")},
			{Name: "Widget", Revenue: decimal.RequireFromString("30.00")},
		},
		Categories: []domain.CategoryRevenue{
			{Category: strPtr("Ferramentas"), Revenue: decimal.RequireFromString("37.50")},
			{Category: nil, Revenue: decimal.RequireFromString("5.00")},
		},
		KPIs: domain.KPIs{
			TotalRevenue:    decimal.RequireFromString("42.50"),
			TotalSalesCount: 3,
			AvgOrderValue:   decimal.RequireFromString("14.17"),
			TopProduct:      strPtr("Widget"),
		},
		RecentSales: []*domain.LedgerEntry{
			{Sale: domain.Sale{ID: 3, OrderDate: date, Quantity: 1, TotalSales: decimal.RequireFromString("5.00")}},
			{
				Sale:        domain.Sale{ID: 2, OrderDate: date, Quantity: 3, TotalSales: decimal.RequireFromString("7.50")},
				ProductName: strPtr("Gadget"),
				Category:    strPtr("Ferramentas"),
			},
		},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected Renderer
		wantErr  bool
	}{
		{format: "", expected: JSONRenderer{}},
		{format: "json", expected: JSONRenderer{}},
		{format: " Chart ", expected: ChartRenderer{}},
		{format: "table", expected: TableRenderer{}},
		{format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			renderer, err := ForFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, renderer)
		})
	}
}

func TestChartRenderer_Build(t *testing.T) {
	doc := ChartRenderer{}.Build(sampleReport())

	assert.False(t, doc.Empty)
	assert.Empty(t, doc.Message)
	require.Len(t, doc.Charts, 3)

	monthly := doc.Charts[0]
	assert.Equal(t, ChartLine, monthly.Type)
	assert.Equal(t, []string{"2024-01", "2024-02"}, monthly.Labels)
	assert.Equal(t, []float64{30, 12.5}, monthly.Dataset.Data)

	top := doc.Charts[1]
	assert.Equal(t, ChartBar, top.Type)
	assert.Equal(t, []string{RemovedProductLabel, "Gadget", "Widget"}, top.Labels)
	assert.Equal(t, []float64{5, 7.5, 30}, top.Dataset.Data)
	assert.Equal(t, "y", top.Options["indexAxis"])

	categories := doc.Charts[2]
	assert.Equal(t, ChartPie, categories.Type)
	assert.Equal(t, []string{"Ferramentas", NoCategoryLabel}, categories.Labels)

	require.Len(t, doc.KPIs, 4)
	assert.Equal(t, "42.50", doc.KPIs[0].Value)
	assert.Equal(t, "3", doc.KPIs[1].Value)
	assert.Equal(t, "14.17", doc.KPIs[2].Value)
	assert.Equal(t, "Widget", doc.KPIs[3].Value)

	assert.Equal(t, recentColumns, doc.RecentSales.Columns)
	require.Len(t, doc.RecentSales.Rows, 2)
	assert.Equal(t, []string{"2024-02-10", RemovedProductLabel, NoCategoryLabel, "1", "5.00"}, doc.RecentSales.Rows[0])
	assert.Equal(t, []string{"2024-02-10", "Gadget", "Ferramentas", "3", "7.50"}, doc.RecentSales.Rows[1])
}

func TestChartRenderer_Build_Vazio(t *testing.T) {
	for name, report := range map[string]*domain.SalesReport{
		"relatório nulo":  nil,
		"relatório vazio": {},
	} {
		t.Run(name, func(t *testing.T) {
			doc := ChartRenderer{}.Build(report)

			assert.True(t, doc.Empty)
			assert.Equal(t, EmptyMessage, doc.Message)
			assert.NotNil(t, doc.Charts)
			assert.Empty(t, doc.Charts)
			assert.NotNil(t, doc.RecentSales.Rows)
			assert.Equal(t, "0.00", doc.KPIs[0].Value)
			assert.Equal(t, "-", doc.KPIs[3].Value)
		})
	}
}

func TestChartRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ChartRenderer{}.Render(&buf, sampleReport()))

	var decoded ChartDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Charts, 3)
	assert.Equal(t, "application/json", ChartRenderer{}.ContentType())
}

func TestJSONRenderer_Render(t *testing.T) {
	t.Run("relatório com vendas", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, JSONRenderer{}.Render(&buf, sampleReport()))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

		assert.Equal(t, false, decoded["empty"])
		assert.Len(t, decoded["monthly_revenue"], 2)
		assert.Len(t, decoded["top_products"], 3)
		assert.Contains(t, decoded, "kpis")
	})

	t.Run("relatório nulo vira coleções vazias", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, JSONRenderer{}.Render(&buf, nil))

		body := buf.String()
		assert.Contains(t, body, `"empty":true`)
		assert.Contains(t, body, `"monthly_revenue":[]`)
		assert.Contains(t, body, `"recent_sales":[]`)
		assert.NotContains(t, body, "null,")
	})
}

func TestTableRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableRenderer{}.Render(&buf, sampleReport()))
	out := buf.String()

	for _, section := range []string{"Indicadores", "Receita mensal", "Produtos com maior receita", "Receita por categoria", "Vendas recentes"} {
		assert.Contains(t, out, "== "+section+" ==")
	}

	widget := strings.Index(out, "Widget  ")
	gadget := strings.Index(out, "Gadget  ")
	require.NotEqual(t, -1, widget)
	require.NotEqual(t, -1, gadget)
	assert.Less(t, widget, gadget, "a tabela lista o maior primeiro")

	assert.Contains(t, out, NoCategoryLabel)
	assert.Contains(t, out, RemovedProductLabel)
	assert.NotContains(t, out, EmptyMessage)
}

func TestTableRenderer_Render_Vazio(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableRenderer{}.Render(&buf, &domain.SalesReport{}))
	out := buf.String()

	assert.Contains(t, out, EmptyMessage)
	assert.Contains(t, out, "== Indicadores ==")
	assert.NotContains(t, out, "== Receita mensal ==")
	assert.True(t, strings.HasPrefix(TableRenderer{}.ContentType(), "text/plain"))
}
