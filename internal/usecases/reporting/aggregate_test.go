package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(id int64, date, name, category, total string) *domain.LedgerEntry {
	d, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}

	e := &domain.LedgerEntry{
		Sale: domain.Sale{
			ID:         id,
			UserID:     1,
			OrderDate:  d,
			Quantity:   1,
			TotalSales: dec(total),
		},
	}
	if name != "" {
		e.ProductName = strPtr(name)
	}
	if category != "" {
		e.Category = strPtr(category)
	}
	return e
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func TestMonthlyRevenue(t *testing.T) {
	entries := []*domain.LedgerEntry{
		entry(3, "2024-03-05", "Widget", "Ferramentas", "10.00"),
		entry(1, "2024-01-10", "Widget", "Ferramentas", "30.00"),
		entry(2, "2024-01-20", "Gadget", "Eletrônicos", "5.50"),
	}

	series := MonthlyRevenue(entries)

	require.Len(t, series, 2, "fevereiro não tem vendas e não deve aparecer")
	assert.Equal(t, "2024-01", series[0].Month)
	assert.True(t, dec("35.50").Equal(series[0].Revenue))
	assert.Equal(t, "2024-03", series[1].Month)
	assert.True(t, dec("10.00").Equal(series[1].Revenue))
}

func TestMonthlyRevenue_OrdenaEntreAnos(t *testing.T) {
	series := MonthlyRevenue([]*domain.LedgerEntry{
		entry(1, "2024-01-01", "A", "", "1"),
		entry(2, "2023-12-31", "A", "", "1"),
	})

	require.Len(t, series, 2)
	assert.Equal(t, []string{"2023-12", "2024-01"}, []string{series[0].Month, series[1].Month})
}

func TestTopProducts(t *testing.T) {
	t.Run("limita a n e devolve em ordem crescente", func(t *testing.T) {
		var entries []*domain.LedgerEntry
		for i := 1; i <= 10; i++ {
			entries = append(entries, entry(int64(i), "2024-01-01", fmt.Sprintf("P%02d", i), "", fmt.Sprintf("%d.00", i*10)))
		}

		top := TopProducts(entries, DefaultTopN)

		require.Len(t, top, DefaultTopN)
		assert.Equal(t, "P03", top[0].Name)
		assert.Equal(t, "P10", top[len(top)-1].Name)
		for i := 1; i < len(top); i++ {
			assert.True(t, top[i-1].Revenue.LessThanOrEqual(top[i].Revenue))
		}
	})

	t.Run("agrupa por nome mesmo com ids diferentes", func(t *testing.T) {
		top := TopProducts([]*domain.LedgerEntry{
			entry(1, "2024-01-01", "Widget", "", "10"),
			entry(2, "2024-01-02", "Widget", "", "15"),
			entry(3, "2024-01-03", "Gadget", "", "20"),
		}, 8)

		require.Len(t, top, 2)
		assert.Equal(t, "Gadget", top[0].Name)
		assert.Equal(t, "Widget", top[1].Name)
		assert.True(t, dec("25").Equal(top[1].Revenue))
	})

	t.Run("ignora grupos com receita zero", func(t *testing.T) {
		top := TopProducts([]*domain.LedgerEntry{
			entry(1, "2024-01-01", "Brinde", "", "0"),
			entry(2, "2024-01-02", "Widget", "", "10"),
		}, 8)

		require.Len(t, top, 1)
		assert.Equal(t, "Widget", top[0].Name)
	})

	t.Run("empate mantém quem apareceu primeiro", func(t *testing.T) {
		entries := []*domain.LedgerEntry{
			entry(1, "2024-01-01", "Primeiro", "", "10"),
			entry(2, "2024-01-02", "Segundo", "", "10"),
			entry(3, "2024-01-03", "Terceiro", "", "10"),
		}

		top := TopProducts(entries, 2)

		require.Len(t, top, 2)
		assert.Equal(t, "Segundo", top[0].Name)
		assert.Equal(t, "Primeiro", top[1].Name)
	})

	t.Run("livro-razão vazio", func(t *testing.T) {
		assert.Empty(t, TopProducts(nil, 8))
		assert.Empty(t, TopProducts([]*domain.LedgerEntry{entry(1, "2024-01-01", "A", "", "1")}, 0))
	})
}

func TestCategoryDistribution(t *testing.T) {
	entries := []*domain.LedgerEntry{
		entry(1, "2024-01-01", "Widget", "Ferramentas", "30"),
		entry(2, "2024-01-02", "Cabo", "", "50"),
		entry(3, "2024-01-03", "", "", "5"),
		entry(4, "2024-01-04", "Gadget", "Eletrônicos", "40"),
		entry(5, "2024-01-05", "Parafuso", "Ferramentas", "20"),
	}

	distribution := CategoryDistribution(entries)

	require.Len(t, distribution, 3)

	assert.Nil(t, distribution[0].Category, "sem categoria e produto removido caem no mesmo grupo")
	assert.True(t, dec("55").Equal(distribution[0].Revenue))

	require.NotNil(t, distribution[1].Category)
	assert.Equal(t, "Ferramentas", *distribution[1].Category)
	assert.True(t, dec("50").Equal(distribution[1].Revenue))

	require.NotNil(t, distribution[2].Category)
	assert.Equal(t, "Eletrônicos", *distribution[2].Category)

	total := decimal.Zero
	for _, c := range distribution {
		total = total.Add(c.Revenue)
	}
	assert.True(t, ComputeKPIs(entries).TotalRevenue.Equal(total))
}

func TestComputeKPIs(t *testing.T) {
	t.Run("sem vendas", func(t *testing.T) {
		kpis := ComputeKPIs(nil)

		assert.True(t, kpis.TotalRevenue.IsZero())
		assert.True(t, kpis.AvgOrderValue.IsZero())
		assert.Equal(t, 0, kpis.TotalSalesCount)
		assert.Nil(t, kpis.TopProduct)
	})

	t.Run("média arredondada em duas casas", func(t *testing.T) {
		kpis := ComputeKPIs([]*domain.LedgerEntry{
			entry(1, "2024-01-01", "A", "", "10"),
			entry(2, "2024-01-02", "B", "", "10"),
			entry(3, "2024-01-03", "B", "", "0.01"),
		})

		assert.Equal(t, 3, kpis.TotalSalesCount)
		assert.Equal(t, "20.01", kpis.TotalRevenue.StringFixed(2))
		assert.Equal(t, "6.67", kpis.AvgOrderValue.StringFixed(2))
		require.NotNil(t, kpis.TopProduct)
		assert.Equal(t, "B", *kpis.TopProduct)
	})

	t.Run("produto destaque coincide com o topo do ranking", func(t *testing.T) {
		entries := []*domain.LedgerEntry{
			entry(1, "2024-01-01", "A", "", "10"),
			entry(2, "2024-01-02", "B", "", "10"),
		}

		kpis := ComputeKPIs(entries)
		top := TopProducts(entries, 8)

		require.NotNil(t, kpis.TopProduct)
		assert.Equal(t, "A", *kpis.TopProduct)
		assert.Equal(t, top[len(top)-1].Name, *kpis.TopProduct)
	})

	t.Run("produtos removidos na liderança não viram destaque", func(t *testing.T) {
		kpis := ComputeKPIs([]*domain.LedgerEntry{
			entry(1, "2024-01-01", "", "", "50"),
			entry(2, "2024-01-02", "A", "", "10"),
		})

		assert.Equal(t, "60.00", kpis.TotalRevenue.StringFixed(2))
		assert.Nil(t, kpis.TopProduct)
	})
}

func TestRecentSales(t *testing.T) {
	var entries []*domain.LedgerEntry
	for i := 1; i <= 25; i++ {
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i/2).Format(time.DateOnly)
		entries = append(entries, entry(int64(i), date, "A", "", "1"))
	}

	recent := RecentSales(entries, DefaultRecentLimit)

	require.Len(t, recent, DefaultRecentLimit)
	assert.Equal(t, int64(25), recent[0].ID)
	assert.Equal(t, int64(24), recent[1].ID)
	for i := 1; i < len(recent); i++ {
		prev, cur := recent[i-1], recent[i]
		assert.False(t, prev.OrderDate.Before(cur.OrderDate))
		if prev.OrderDate.Equal(cur.OrderDate.Time) {
			assert.Greater(t, prev.ID, cur.ID)
		}
	}

	assert.Len(t, RecentSales(entries[:3], 20), 3)
	assert.Empty(t, RecentSales(entries, 0))
}

func TestBuildReport_Widget(t *testing.T) {
	// Widget a 10.00, três unidades em 2024-01-10
	entries := []*domain.LedgerEntry{
		entry(1, "2024-01-10", "Widget", "Ferramentas", "30.00"),
	}

	report := BuildReport(entries, DefaultOptions())

	require.Len(t, report.MonthlyRevenue, 1)
	assert.Equal(t, "2024-01", report.MonthlyRevenue[0].Month)
	assert.True(t, dec("30.00").Equal(report.MonthlyRevenue[0].Revenue))

	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Widget", report.TopProducts[0].Name)

	require.Len(t, report.Categories, 1)
	assert.Equal(t, "Ferramentas", *report.Categories[0].Category)

	assert.Equal(t, 1, report.KPIs.TotalSalesCount)
	assert.Equal(t, "30.00", report.KPIs.TotalRevenue.StringFixed(2))
	assert.Equal(t, "30.00", report.KPIs.AvgOrderValue.StringFixed(2))
	assert.Equal(t, "Widget", *report.KPIs.TopProduct)
	require.Len(t, report.RecentSales, 1)
}

func TestBuildReport_Vazio(t *testing.T) {
	report := BuildReport(nil, Options{})

	assert.True(t, report.IsEmpty())
	assert.Empty(t, report.MonthlyRevenue)
	assert.Empty(t, report.TopProducts)
	assert.Empty(t, report.Categories)
	assert.Empty(t, report.RecentSales)
	assert.Nil(t, report.KPIs.TopProduct)
}

func TestBuildReport_Reconciliacao(t *testing.T) {
	entries := []*domain.LedgerEntry{
		entry(4, "2024-02-01", "B", "X", "12.34"),
		entry(1, "2024-01-01", "A", "X", "10.00"),
		entry(2, "2024-01-15", "", "", "7.66"),
		entry(3, "2024-03-09", "C", "Y", "100.00"),
		entry(5, "2024-03-09", "A", "X", "0.01"),
	}

	report := BuildReport(entries, DefaultOptions())

	monthly := make([]decimal.Decimal, 0)
	for _, m := range report.MonthlyRevenue {
		monthly = append(monthly, m.Revenue)
	}
	categories := make([]decimal.Decimal, 0)
	for _, c := range report.Categories {
		categories = append(categories, c.Revenue)
	}
	leaderboard := make([]decimal.Decimal, 0)
	for _, p := range report.TopProducts {
		leaderboard = append(leaderboard, p.Revenue)
	}

	require.Len(t, report.TopProducts, 4, "A, B, C e o grupo de produtos removidos")
	assert.Equal(t, "130.01", report.KPIs.TotalRevenue.StringFixed(2))
	assert.True(t, report.KPIs.TotalRevenue.Equal(sum(monthly...)))
	assert.True(t, report.KPIs.TotalRevenue.Equal(sum(leaderboard...)))
	assert.True(t, report.KPIs.TotalRevenue.Equal(sum(categories...)))
}

func TestBuildReport_IndependeDaOrdemDeEntrada(t *testing.T) {
	entries := []*domain.LedgerEntry{
		entry(1, "2024-01-01", "A", "X", "10"),
		entry(2, "2024-01-01", "B", "Y", "10"),
		entry(3, "2024-02-01", "C", "X", "5"),
	}
	reversed := []*domain.LedgerEntry{entries[2], entries[1], entries[0]}

	assert.Equal(t, BuildReport(entries, DefaultOptions()), BuildReport(reversed, DefaultOptions()))
	assert.Equal(t, BuildReport(entries, DefaultOptions()), BuildReport(entries, DefaultOptions()))
}
