package repository

//go:generate mockgen -source=sale.go -destination=mocks/sale.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/kr1shnav/sales-dashboard/infrastructure/database/postgres"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

const (
	salesTable = "sales"
)

// SaleRepository é o livro-razão de vendas: somente inserção e leitura por usuário
type SaleRepository interface {
	InsertSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	ListSalesForUser(ctx context.Context, userID int) ([]*domain.LedgerEntry, error)
	CountSales(ctx context.Context) (int, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) InsertSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	queryBuilder := squirrel.
		Insert(salesTable).
		Columns("user_id", "order_date", "product_id", "quantity", "total_sales").
		Values(sale.UserID, sale.OrderDate, sale.ProductID, sale.Quantity, sale.TotalSales).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.Queryer(ctx).QueryRowContext(ctx, query, args...).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return nil, postgres.TranslateError(fmt.Errorf("erro ao inserir venda: %w", err))
	}

	return sale, nil
}

// ListSalesForUser devolve apenas as vendas do usuário informado. Nome e categoria vêm
// do catálogo atual e ficam nulos quando o produto não existe mais.
func (r *saleRepository) ListSalesForUser(ctx context.Context, userID int) ([]*domain.LedgerEntry, error) {
	queryBuilder := squirrel.
		Select(
			"s.id",
			"s.user_id",
			"s.order_date",
			"s.product_id",
			"s.quantity",
			"s.total_sales",
			"s.created_at",
			"p.name",
			"p.category",
		).
		From(salesTable + " s").
		LeftJoin(productsTable + " p ON p.id = s.product_id").
		Where(squirrel.Eq{"s.user_id": userID}).
		OrderBy("s.order_date ASC", "s.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Queryer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.TranslateError(fmt.Errorf("erro ao executar a query: %w", err))
	}
	defer rows.Close()

	entries := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.OrderDate,
			&entry.ProductID,
			&entry.Quantity,
			&entry.TotalSales,
			&entry.CreatedAt,
			&entry.ProductName,
			&entry.Category,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return entries, nil
}

func (r *saleRepository) CountSales(ctx context.Context) (int, error) {
	return count(ctx, r.conn, salesTable)
}
