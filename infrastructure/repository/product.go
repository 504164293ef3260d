package repository

//go:generate mockgen -source=product.go -destination=mocks/product.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/kr1shnav/sales-dashboard/infrastructure/database/postgres"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	productsTable = "products"
)

var productColumns = []string{"id", "name", "category", "price", "created_at", "updated_at"}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, productID int) (*domain.Product, error)
	GetUnitPrice(ctx context.Context, productID int) (decimal.Decimal, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	queryBuilder := squirrel.
		Insert(productsTable).
		Columns("name", "category", "price").
		Values(product.Name, product.Category, product.Price).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.TranslateError(fmt.Errorf("erro ao inserir produto: %w", err))
	}

	return product, nil
}

// UpdateProduct grava preço e categoria atuais; a última escrita prevalece
func (r *productRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	queryBuilder := squirrel.
		Update(productsTable).
		Set("category", product.Category).
		Set("price", product.Price).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": product.ID}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Queryer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return postgres.TranslateError(fmt.Errorf("erro ao atualizar produto: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	if affected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, productID int) (*domain.Product, error) {
	queryBuilder := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product, err := scanProduct(r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return product, nil
}

// GetUnitPrice lê o preço atual bloqueando a linha do produto até o fim da transação,
// de forma que uma alteração de preço concorrente não se intercale com o registro da venda.
func (r *productRepository) GetUnitPrice(ctx context.Context, productID int) (decimal.Decimal, error) {
	queryBuilder := squirrel.
		Select("price").
		From(productsTable).
		Where(squirrel.Eq{"id": productID}).
		Suffix("FOR SHARE").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var price decimal.Decimal
	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, domain.ErrProductNotFound
	}
	if err != nil {
		return decimal.Zero, postgres.TranslateError(fmt.Errorf("erro ao buscar preço do produto: %w", err))
	}

	return price, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select(productColumns...).
		From(productsTable).
		OrderBy("name ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountProducts(ctx context.Context) (int, error) {
	return count(ctx, r.conn, productsTable)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func count(ctx context.Context, conn *postgres.Connection, table string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar registros de %s: %w", table, err)
	}

	return total, nil
}
