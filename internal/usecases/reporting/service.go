// Package reporting transforma o livro-razão de um usuário nas visões do painel de vendas
package reporting

import (
	"context"
	"time"

	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/metrics"
)

type Reporter interface {
	BuildDashboard(ctx context.Context, userID int) (*domain.SalesReport, error)
}

type Service struct {
	saleRepo repository.SaleRepository
	opts     Options
	metrics  *metrics.LedgerMetrics
}

func NewService(saleRepo repository.SaleRepository, opts Options, ledgerMetrics *metrics.LedgerMetrics) Reporter {
	return &Service{
		saleRepo: saleRepo,
		opts:     opts,
		metrics:  ledgerMetrics,
	}
}

// BuildDashboard lê somente as vendas do usuário; o filtro acontece na consulta ao repositório
func (s *Service) BuildDashboard(ctx context.Context, userID int) (*domain.SalesReport, error) {
	startedAt := time.Now()

	entries, err := s.saleRepo.ListSalesForUser(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("reporting: erro ao ler o livro-razão")
		return nil, domain.NewDomainError(err, apiErrors.ErrDatabaseOperation, "erro ao ler vendas do usuário")
	}

	report := BuildReport(entries, s.opts)
	s.metrics.ObserveReport(time.Since(startedAt))

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":     userID,
		"user_sales":  report.KPIs.TotalSalesCount,
		"user_months": len(report.MonthlyRevenue),
	}).Debug("reporting: painel montado")

	return report, nil
}
