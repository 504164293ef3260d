// Package memory implementa os repositórios em memória, usados em execução local e testes
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductRepository = (*Store)(nil)
	_ repository.SaleRepository    = (*Store)(nil)
	_ repository.UserRepository    = (*Store)(nil)
	_ repository.Transactor        = (*Store)(nil)
)

type txKey struct{}

type state struct {
	products      []domain.Product
	users         []domain.User
	sales         []domain.Sale
	nextProductID int
	nextUserID    int
	nextSaleID    int64
}

func (st state) clone() state {
	out := st
	out.products = append([]domain.Product(nil), st.products...)
	out.users = append([]domain.User(nil), st.users...)
	out.sales = append([]domain.Sale(nil), st.sales...)
	return out
}

// Store guarda catálogo, usuários e vendas atrás de um único mutex. Uma transação
// mantém o mutex durante toda a execução e restaura o estado anterior em caso de erro.
type Store struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
}

func New() *Store {
	return &Store{
		st: state{
			nextProductID: 1,
			nextUserID:    1,
			nextSaleID:    1,
		},
		now: time.Now,
	}
}

func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	unlock := s.lock(ctx)
	defer unlock()

	now := s.now()
	product.ID = s.st.nextProductID
	product.CreatedAt = now
	product.UpdatedAt = now
	s.st.nextProductID++
	s.st.products = append(s.st.products, copyProduct(*product))

	return product, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product *domain.Product) error {
	unlock := s.lock(ctx)
	defer unlock()

	for i := range s.st.products {
		if s.st.products[i].ID == product.ID {
			s.st.products[i].Category = cloneString(product.Category)
			s.st.products[i].Price = product.Price
			s.st.products[i].UpdatedAt = s.now()
			return nil
		}
	}

	return domain.ErrProductNotFound
}

func (s *Store) GetProductByID(ctx context.Context, productID int) (*domain.Product, error) {
	unlock := s.lock(ctx)
	defer unlock()

	if p := s.findProduct(productID); p != nil {
		out := copyProduct(*p)
		return &out, nil
	}

	return nil, nil
}

func (s *Store) GetUnitPrice(ctx context.Context, productID int) (decimal.Decimal, error) {
	unlock := s.lock(ctx)
	defer unlock()

	if p := s.findProduct(productID); p != nil {
		return p.Price, nil
	}

	return decimal.Zero, domain.ErrProductNotFound
}

func (s *Store) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	unlock := s.lock(ctx)
	defer unlock()

	products := make([]*domain.Product, 0, len(s.st.products))
	for _, p := range s.st.products {
		out := copyProduct(p)
		products = append(products, &out)
	}

	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})

	return products, nil
}

func (s *Store) CountProducts(ctx context.Context) (int, error) {
	unlock := s.lock(ctx)
	defer unlock()

	return len(s.st.products), nil
}

// DeleteProduct existe só em memória, para reproduzir vendas que apontam para um produto removido
func (s *Store) DeleteProduct(ctx context.Context, productID int) {
	unlock := s.lock(ctx)
	defer unlock()

	for i := range s.st.products {
		if s.st.products[i].ID == productID {
			s.st.products = append(s.st.products[:i], s.st.products[i+1:]...)
			return
		}
	}
}

func (s *Store) InsertSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	unlock := s.lock(ctx)
	defer unlock()

	if s.findUser(sale.UserID) == nil {
		return nil, domain.ErrUserNotFound
	}

	sale.ID = s.st.nextSaleID
	sale.CreatedAt = s.now()
	s.st.nextSaleID++
	s.st.sales = append(s.st.sales, *sale)

	return sale, nil
}

func (s *Store) ListSalesForUser(ctx context.Context, userID int) ([]*domain.LedgerEntry, error) {
	unlock := s.lock(ctx)
	defer unlock()

	entries := make([]*domain.LedgerEntry, 0)
	for _, sale := range s.st.sales {
		if sale.UserID != userID {
			continue
		}

		entry := &domain.LedgerEntry{Sale: sale}
		if p := s.findProduct(sale.ProductID); p != nil {
			entry.ProductName = cloneString(&p.Name)
			entry.Category = cloneString(p.Category)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].OrderDate.Equal(entries[j].OrderDate.Time) {
			return entries[i].OrderDate.Before(entries[j].OrderDate)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

func (s *Store) CountSales(ctx context.Context) (int, error) {
	unlock := s.lock(ctx)
	defer unlock()

	return len(s.st.sales), nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	unlock := s.lock(ctx)
	defer unlock()

	for _, u := range s.st.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}

	user.ID = s.st.nextUserID
	user.CreatedAt = s.now()
	s.st.nextUserID++
	s.st.users = append(s.st.users, *user)

	return user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	unlock := s.lock(ctx)
	defer unlock()

	for i := range s.st.users {
		if s.st.users[i].ID != user.ID {
			continue
		}
		if user.Username != "" {
			s.st.users[i].Username = user.Username
		}
		if user.PasswordHash != "" {
			s.st.users[i].PasswordHash = user.PasswordHash
		}
		return nil
	}

	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	unlock := s.lock(ctx)
	defer unlock()

	for _, u := range s.st.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}

	return nil, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	unlock := s.lock(ctx)
	defer unlock()

	if u := s.findUser(userID); u != nil {
		out := *u
		return &out, nil
	}

	return nil, nil
}

func (s *Store) findProduct(productID int) *domain.Product {
	for i := range s.st.products {
		if s.st.products[i].ID == productID {
			return &s.st.products[i]
		}
	}
	return nil
}

func (s *Store) findUser(userID int) *domain.User {
	for i := range s.st.users {
		if s.st.users[i].ID == userID {
			return &s.st.users[i]
		}
	}
	return nil
}

func copyProduct(p domain.Product) domain.Product {
	p.Category = cloneString(p.Category)
	return p
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
