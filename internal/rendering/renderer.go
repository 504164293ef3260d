// Package rendering converte o relatório de vendas em artefatos de apresentação.
// Os renderizadores recebem apenas o relatório pronto e nunca consultam o banco.
package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

const (
	FormatJSON  = "json"
	FormatChart = "chart"
	FormatTable = "table"
)

// Rótulos usados quando o catálogo não resolve nome ou categoria
const (
	RemovedProductLabel = "Produto removido"
	NoCategoryLabel     = "Sem categoria"
	EmptyMessage        = "Nenhuma venda registrada ainda"
)

type Renderer interface {
	ContentType() string
	Render(w io.Writer, report *domain.SalesReport) error
}

// ForFormat escolhe o renderizador pelo nome; vazio significa JSON
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return JSONRenderer{}, nil
	case FormatChart:
		return ChartRenderer{}, nil
	case FormatTable:
		return TableRenderer{}, nil
	default:
		return nil, fmt.Errorf("formato de relatório desconhecido: %s", format)
	}
}

func productLabel(name string) string {
	if name == "" {
		return RemovedProductLabel
	}
	return name
}

func productNameLabel(name *string) string {
	if name == nil {
		return RemovedProductLabel
	}
	return productLabel(*name)
}

func categoryLabel(category *string) string {
	if category == nil {
		return NoCategoryLabel
	}
	return *category
}

// normalize garante coleções vazias em vez de nulas
func normalize(report *domain.SalesReport) *domain.SalesReport {
	out := domain.SalesReport{}
	if report != nil {
		out = *report
	}
	if out.MonthlyRevenue == nil {
		out.MonthlyRevenue = []domain.MonthlyRevenue{}
	}
	if out.TopProducts == nil {
		out.TopProducts = []domain.ProductRevenue{}
	}
	if out.Categories == nil {
		out.Categories = []domain.CategoryRevenue{}
	}
	if out.RecentSales == nil {
		out.RecentSales = []*domain.LedgerEntry{}
	}
	return &out
}
