// Package cataloging mantém o catálogo de produtos e seus preços vigentes
package cataloging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/validation"
)

type Catalog interface {
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req domain.UpdateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type Service struct {
	tx          repository.Transactor
	productRepo repository.ProductRepository
}

func NewService(tx repository.Transactor, productRepo repository.ProductRepository) Catalog {
	return &Service{
		tx:          tx,
		productRepo: productRepo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = normalizeCategory(req.Category)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.CreateProduct(ctx, &domain.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price.Round(2),
	})
	if err != nil {
		if domain.IsValidation(err) {
			return nil, domain.NewFieldError(err, apiErrors.ErrInvalidPrice, "price", "valor fora do intervalo aceito")
		}
		return nil, domain.NewDomainError(err, apiErrors.ErrDatabaseOperation, "erro ao cadastrar produto")
	}

	log.ForContext(ctx).Infof("cataloging: produto %d cadastrado", product.ID)
	return product, nil
}

// UpdateProduct altera preço e categoria. Vendas já gravadas mantêm o total congelado.
func (s *Service) UpdateProduct(ctx context.Context, req domain.UpdateProductRequest) (*domain.Product, error) {
	req.Category = normalizeCategory(req.Category)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *domain.Product
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetProductByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		if req.Category != nil {
			product.Category = req.Category
		}
		if req.Price != nil {
			product.Price = req.Price.Round(2)
		}

		if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
			return err
		}

		updated = product
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.NewFieldError(err, apiErrors.ErrProductNotFound, "id", fmt.Sprintf("id %d", req.ID))
		}
		if errors.Is(err, domain.ErrIsolationFailure) {
			return nil, domain.NewDomainError(err, apiErrors.ErrIsolationFailure, "tente novamente")
		}
		if domain.IsValidation(err) {
			return nil, domain.NewFieldError(err, apiErrors.ErrInvalidPrice, "price", "valor fora do intervalo aceito")
		}
		return nil, domain.NewDomainError(err, apiErrors.ErrDatabaseOperation, "erro ao atualizar produto")
	}

	return updated, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, domain.NewDomainError(err, apiErrors.ErrDatabaseOperation, "erro ao listar produtos")
	}
	return products, nil
}

func validateRequest(req any) error {
	err := validation.Struct(req)
	if err == nil {
		return nil
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) && vErr.Has("price") {
		return domain.NewFieldError(domain.ErrInvalidPrice, apiErrors.ErrInvalidPrice, "price", vErr.Fields["price"])
	}

	return domain.NewDomainError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, err.Error())
}

// normalizeCategory trata categoria em branco como ausente
func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
