// Package recording registra vendas congelando o total a partir do preço atual do catálogo
package recording

import (
	"context"
	"errors"
	"fmt"

	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/metrics"
	"github.com/kr1shnav/sales-dashboard/pkg/validation"
	"github.com/shopspring/decimal"
)

type Recorder interface {
	RecordSale(ctx context.Context, userID int, input domain.RecordSaleInput) (*domain.Sale, error)
	ListSales(ctx context.Context, userID int) ([]*domain.LedgerEntry, error)
}

type Service struct {
	tx          repository.Transactor
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	metrics     *metrics.LedgerMetrics
}

func NewService(
	tx repository.Transactor,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	ledgerMetrics *metrics.LedgerMetrics,
) Recorder {
	return &Service{
		tx:          tx,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		metrics:     ledgerMetrics,
	}
}

// RecordSale valida a entrada antes de tocar no banco. A leitura do preço e a inserção
// acontecem na mesma transação, então o total gravado é sempre quantidade × preço vigente.
func (s *Service) RecordSale(ctx context.Context, userID int, input domain.RecordSaleInput) (*domain.Sale, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":    userID,
		"product_id": input.ProductID,
	})

	orderDate, err := validateInput(input)
	if err != nil {
		s.metrics.IncRecorded(metrics.ResultRejected)
		return nil, err
	}

	var recorded *domain.Sale
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		price, err := s.productRepo.GetUnitPrice(ctx, input.ProductID)
		if err != nil {
			return err
		}

		total := price.Mul(decimal.NewFromInt(int64(input.Quantity)))
		if total.GreaterThan(domain.MaxSaleTotal) {
			return domain.NewFieldError(domain.ErrTotalOutOfRange, apiErrors.ErrInvalidQuantity, "quantity", fmt.Sprintf("total %s", total.StringFixed(2)))
		}

		sale := &domain.Sale{
			UserID:     userID,
			OrderDate:  orderDate,
			ProductID:  input.ProductID,
			Quantity:   input.Quantity,
			TotalSales: total,
		}

		recorded, err = s.saleRepo.InsertSale(ctx, sale)
		return err
	})
	if err != nil {
		s.metrics.IncRecorded(resultFor(err))
		logger.WithError(err).Warn("recording: venda não registrada")
		return nil, classify(err, input.ProductID)
	}

	s.metrics.IncRecorded(metrics.ResultRecorded)
	logger.Debugf("recording: venda %d registrada com total %s", recorded.ID, recorded.TotalSales.StringFixed(2))

	return recorded, nil
}

// ListSales devolve o livro-razão do usuário na ordem (data, id)
func (s *Service) ListSales(ctx context.Context, userID int) ([]*domain.LedgerEntry, error) {
	entries, err := s.saleRepo.ListSalesForUser(ctx, userID)
	if err != nil {
		return nil, classify(err, 0)
	}
	return entries, nil
}

func validateInput(input domain.RecordSaleInput) (domain.Date, error) {
	if err := validation.Struct(input); err != nil {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			return domain.Date{}, domain.NewDomainError(domain.ErrValidation, apiErrors.ErrInvalidRequest, err.Error())
		}

		switch {
		case vErr.Has("quantity"):
			return domain.Date{}, domain.NewFieldError(domain.ErrInvalidQuantity, apiErrors.ErrInvalidQuantity, "quantity", fmt.Sprintf("recebido %d", input.Quantity))
		case vErr.Has("order_date"):
			return domain.Date{}, domain.NewFieldError(domain.ErrInvalidDate, apiErrors.ErrInvalidDate, "order_date", "data não informada")
		default:
			return domain.Date{}, domain.NewFieldError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "product_id", vErr.Error())
		}
	}

	orderDate, err := domain.ParseDate(input.OrderDate)
	if err != nil {
		return domain.Date{}, domain.NewFieldError(domain.ErrInvalidDate, apiErrors.ErrInvalidDate, "order_date", fmt.Sprintf("recebido %q", input.OrderDate))
	}

	return orderDate, nil
}

func classify(err error, productID int) error {
	var domainErr *domain.DomainError
	switch {
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, domain.ErrProductNotFound):
		return domain.NewFieldError(err, apiErrors.ErrProductNotFound, "product_id", fmt.Sprintf("id %d", productID))
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewDomainError(err, apiErrors.ErrNotFound, "")
	case errors.Is(err, domain.ErrIsolationFailure):
		return domain.NewDomainError(err, apiErrors.ErrIsolationFailure, "tente novamente")
	case errors.Is(err, domain.ErrIntegrity):
		return domain.NewDomainError(err, apiErrors.ErrIntegrity, "")
	case errors.Is(err, domain.ErrValidation):
		return domain.NewDomainError(err, apiErrors.ErrInvalidRequest, "valor fora do intervalo aceito")
	default:
		return domain.NewDomainError(err, apiErrors.ErrDatabaseOperation, "erro ao acessar o livro-razão")
	}
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return metrics.ResultRejected
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrIsolationFailure), errors.Is(err, domain.ErrIntegrity):
		return metrics.ResultConflict
	default:
		return metrics.ResultFailed
	}
}
