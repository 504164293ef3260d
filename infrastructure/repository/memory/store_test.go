package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

func seed(t *testing.T) (*Store, *domain.User, *domain.Product) {
	t.Helper()
	ctx := context.Background()

	store := New()
	user, err := store.CreateUser(ctx, &domain.User{Username: "ana", PasswordHash: "hash"})
	require.NoError(t, err)

	category := "Ferramentas"
	product, err := store.CreateProduct(ctx, &domain.Product{Name: "Widget", Category: &category, Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	return store, user, product
}

func sale(userID, productID int, date string, total int64) *domain.Sale {
	d, _ := domain.ParseDate(date)
	return &domain.Sale{
		UserID:     userID,
		ProductID:  productID,
		OrderDate:  d,
		Quantity:   1,
		TotalSales: decimal.NewFromInt(total),
	}
}

func TestStore_RunInTransaction_DesfazEmErro(t *testing.T) {
	ctx := context.Background()
	store, user, product := seed(t)

	errBoom := errors.New("falha")
	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := store.InsertSale(ctx, sale(user.ID, product.ID, "2024-01-01", 10))
		require.NoError(t, err)
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	count, err := store.CountSales(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	inserted, err := store.InsertSale(ctx, sale(user.ID, product.ID, "2024-01-01", 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted.ID, "o id consumido na transação desfeita é reaproveitado")
}

func TestStore_RunInTransaction_Aninhada(t *testing.T) {
	ctx := context.Background()
	store, user, product := seed(t)

	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		return store.RunInTransaction(ctx, func(ctx context.Context) error {
			_, err := store.InsertSale(ctx, sale(user.ID, product.ID, "2024-01-01", 10))
			return err
		})
	})
	require.NoError(t, err)

	count, err := store.CountSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_InsertSale_UsuarioInexistente(t *testing.T) {
	store, _, product := seed(t)

	_, err := store.InsertSale(context.Background(), sale(99, product.ID, "2024-01-01", 10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListSalesForUser(t *testing.T) {
	ctx := context.Background()
	store, user, product := seed(t)

	other, err := store.CreateUser(ctx, &domain.User{Username: "bruno"})
	require.NoError(t, err)

	for _, s := range []*domain.Sale{
		sale(user.ID, product.ID, "2024-03-01", 30),
		sale(other.ID, product.ID, "2024-01-01", 99),
		sale(user.ID, product.ID, "2024-01-15", 10),
		sale(user.ID, product.ID, "2024-01-15", 20),
	} {
		_, err := store.InsertSale(ctx, s)
		require.NoError(t, err)
	}

	entries, err := store.ListSalesForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2024-01-15", entries[0].OrderDate.String())
	assert.Equal(t, int64(3), entries[0].ID)
	assert.Equal(t, int64(4), entries[1].ID)
	assert.Equal(t, "2024-03-01", entries[2].OrderDate.String())

	require.NotNil(t, entries[0].ProductName)
	assert.Equal(t, "Widget", *entries[0].ProductName)
	assert.Equal(t, "Ferramentas", *entries[0].Category)
}

func TestStore_ListSalesForUser_ProdutoRemovido(t *testing.T) {
	ctx := context.Background()
	store, user, product := seed(t)

	_, err := store.InsertSale(ctx, sale(user.ID, product.ID, "2024-01-01", 10))
	require.NoError(t, err)

	store.DeleteProduct(ctx, product.ID)

	entries, err := store.ListSalesForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ProductName)
	assert.Nil(t, entries[0].Category)
	assert.Equal(t, "10", entries[0].TotalSales.String())
}

func TestStore_ProdutosSaoCopiados(t *testing.T) {
	ctx := context.Background()
	store, _, product := seed(t)

	got, err := store.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	*got.Category = "Alterada"

	again, err := store.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ferramentas", *again.Category)

	missing, err := store.GetProductByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.GetUnitPrice(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.ErrorIs(t, store.UpdateProduct(ctx, &domain.Product{ID: 404}), domain.ErrProductNotFound)
}

func TestStore_CreateUser_NomeRepetido(t *testing.T) {
	store, _, _ := seed(t)

	_, err := store.CreateUser(context.Background(), &domain.User{Username: "ana"})
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}
