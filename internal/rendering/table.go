package rendering

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

// TableRenderer escreve o painel como tabelas de texto para terminal
type TableRenderer struct{}

func (TableRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (TableRenderer) Render(w io.Writer, report *domain.SalesReport) error {
	empty := report.IsEmpty()
	report = normalize(report)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	section(tw, "Indicadores")
	for _, card := range kpiCards(report.KPIs) {
		fmt.Fprintf(tw, "%s\t%s\n", card.Label, card.Value)
	}

	if empty {
		fmt.Fprintf(tw, "\n%s\n", EmptyMessage)
		return tw.Flush()
	}

	section(tw, "Receita mensal")
	fmt.Fprintln(tw, "Mês\tReceita")
	for _, point := range report.MonthlyRevenue {
		fmt.Fprintf(tw, "%s\t%s\n", point.Month, point.Revenue.StringFixed(2))
	}

	// a tabela lista do maior para o menor, ao contrário do gráfico
	section(tw, "Produtos com maior receita")
	fmt.Fprintln(tw, "#\tProduto\tReceita")
	for i := len(report.TopProducts) - 1; i >= 0; i-- {
		p := report.TopProducts[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\n", len(report.TopProducts)-i, productLabel(p.Name), p.Revenue.StringFixed(2))
	}

	section(tw, "Receita por categoria")
	fmt.Fprintln(tw, "Categoria\tReceita")
	for _, c := range report.Categories {
		fmt.Fprintf(tw, "%s\t%s\n", categoryLabel(c.Category), c.Revenue.StringFixed(2))
	}

	section(tw, "Vendas recentes")
	fmt.Fprintln(tw, strings.Join(recentColumns, "\t"))
	for _, row := range recentRows(report.RecentSales) {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}
