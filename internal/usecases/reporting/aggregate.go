package reporting

import (
	"sort"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopN        = 8
	DefaultRecentLimit = 20
)

// Options controla o tamanho das visões limitadas do painel
type Options struct {
	TopN        int
	RecentLimit int
}

func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, RecentLimit: DefaultRecentLimit}
}

// accumulator soma receita por chave preservando a ordem da primeira ocorrência
type accumulator[K comparable] struct {
	index  map[K]int
	keys   []K
	totals []decimal.Decimal
}

func newAccumulator[K comparable]() *accumulator[K] {
	return &accumulator[K]{index: make(map[K]int)}
}

func (a *accumulator[K]) add(key K, amount decimal.Decimal) {
	i, ok := a.index[key]
	if !ok {
		i = len(a.keys)
		a.index[key] = i
		a.keys = append(a.keys, key)
		a.totals = append(a.totals, decimal.Zero)
	}
	a.totals[i] = a.totals[i].Add(amount)
}

// byRevenueDesc devolve os índices ordenados por receita decrescente; empates mantêm a primeira ocorrência
func (a *accumulator[K]) byRevenueDesc() []int {
	order := make([]int, len(a.keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return a.totals[order[i]].GreaterThan(a.totals[order[j]])
	})
	return order
}

// Canonical copia as entradas ordenando por (data, id) crescente, descartando nulos.
// Todas as visões partem dessa ordem para não depender da ordem devolvida pelo banco.
func Canonical(entries []*domain.LedgerEntry) []*domain.LedgerEntry {
	out := make([]*domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate.Time) {
			return out[i].OrderDate.Before(out[j].OrderDate)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// MonthlyRevenue soma por AAAA-MM em ordem crescente. Meses sem vendas não aparecem.
func MonthlyRevenue(entries []*domain.LedgerEntry) []domain.MonthlyRevenue {
	acc := newAccumulator[string]()
	for _, e := range Canonical(entries) {
		acc.add(e.OrderDate.MonthKey(), e.TotalSales)
	}

	series := make([]domain.MonthlyRevenue, 0, len(acc.keys))
	for i, month := range acc.keys {
		series = append(series, domain.MonthlyRevenue{Month: month, Revenue: acc.totals[i]})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series
}

func productKey(e *domain.LedgerEntry) string {
	if e.ProductName == nil {
		return ""
	}
	return *e.ProductName
}

func productTotals(entries []*domain.LedgerEntry) *accumulator[string] {
	acc := newAccumulator[string]()
	for _, e := range Canonical(entries) {
		acc.add(productKey(e), e.TotalSales)
	}
	return acc
}

// TopProducts agrupa por nome do produto e seleciona os n maiores totais não nulos.
// A seleção é pelo maior total, mas o resultado sai em ordem crescente, pronto para
// um gráfico de barras horizontal com o maior no topo.
func TopProducts(entries []*domain.LedgerEntry, n int) []domain.ProductRevenue {
	if n <= 0 {
		return []domain.ProductRevenue{}
	}

	acc := productTotals(entries)

	selected := make([]domain.ProductRevenue, 0, n)
	for _, i := range acc.byRevenueDesc() {
		if len(selected) == n {
			break
		}
		if acc.totals[i].IsZero() {
			continue
		}
		selected = append(selected, domain.ProductRevenue{Name: acc.keys[i], Revenue: acc.totals[i]})
	}

	for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
		selected[i], selected[j] = selected[j], selected[i]
	}

	return selected
}

type categoryKey struct {
	valid bool
	name  string
}

// CategoryDistribution soma por categoria. Vendas sem categoria, ou de produtos
// removidos, formam um grupo próprio para que a soma bata com a receita total.
func CategoryDistribution(entries []*domain.LedgerEntry) []domain.CategoryRevenue {
	acc := newAccumulator[categoryKey]()
	for _, e := range Canonical(entries) {
		key := categoryKey{}
		if e.Category != nil {
			key = categoryKey{valid: true, name: *e.Category}
		}
		acc.add(key, e.TotalSales)
	}

	distribution := make([]domain.CategoryRevenue, 0, len(acc.keys))
	for _, i := range acc.byRevenueDesc() {
		item := domain.CategoryRevenue{Revenue: acc.totals[i]}
		if key := acc.keys[i]; key.valid {
			name := key.name
			item.Category = &name
		}
		distribution = append(distribution, item)
	}

	return distribution
}

// ComputeKPIs calcula os indicadores do painel. Sem vendas, média e receita são zero
// e não há produto destaque. Quando o maior grupo é o de produtos removidos, o
// destaque fica nulo.
func ComputeKPIs(entries []*domain.LedgerEntry) domain.KPIs {
	kpis := domain.KPIs{
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}

	for _, e := range entries {
		if e == nil {
			continue
		}
		kpis.TotalRevenue = kpis.TotalRevenue.Add(e.TotalSales)
		kpis.TotalSalesCount++
	}

	if kpis.TotalSalesCount == 0 {
		return kpis
	}

	kpis.AvgOrderValue = kpis.TotalRevenue.DivRound(decimal.NewFromInt(int64(kpis.TotalSalesCount)), 2)

	acc := productTotals(entries)
	if order := acc.byRevenueDesc(); len(order) > 0 && acc.keys[order[0]] != "" {
		top := acc.keys[order[0]]
		kpis.TopProduct = &top
	}

	return kpis
}

// RecentSales devolve as limit vendas mais recentes, por data e id decrescentes
func RecentSales(entries []*domain.LedgerEntry, limit int) []*domain.LedgerEntry {
	ordered := Canonical(entries)
	if limit <= 0 {
		return []*domain.LedgerEntry{}
	}

	recent := make([]*domain.LedgerEntry, 0, min(limit, len(ordered)))
	for i := len(ordered) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, ordered[i])
	}

	return recent
}

// BuildReport monta todas as visões do painel a partir do mesmo conjunto de vendas
func BuildReport(entries []*domain.LedgerEntry, opts Options) *domain.SalesReport {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}

	return &domain.SalesReport{
		MonthlyRevenue: MonthlyRevenue(entries),
		TopProducts:    TopProducts(entries, opts.TopN),
		Categories:     CategoryDistribution(entries),
		KPIs:           ComputeKPIs(entries),
		RecentSales:    RecentSales(entries, opts.RecentLimit),
	}
}
