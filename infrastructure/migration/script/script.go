// Carga inicial de um catálogo e de um usuário de demonstração.
// As vendas passam pelo mesmo registrador da API, então os totais são congelados do mesmo jeito.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/kr1shnav/sales-dashboard/infrastructure/database/postgres"
	"github.com/kr1shnav/sales-dashboard/infrastructure/migration"
	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/internal/config"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/authenticating"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/cataloging"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/recording"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name     string
	Category string
	Price    string
}

type seedSale struct {
	Product  int // índice em catalog
	Quantity int
	Date     string
}

var catalog = []seedProduct{
	{"Widget", "Ferramentas", "10.00"},
	{"Gadget", "Eletrônicos", "49.90"},
	{"Parafuso", "Ferramentas", "0.35"},
	{"Fone de ouvido", "Eletrônicos", "129.00"},
	{"Caderno", "Papelaria", "18.50"},
	{"Caneta", "Papelaria", "3.20"},
	{"Cabo USB", "", "25.00"},
}

var sales = []seedSale{
	{0, 3, "2024-01-10"},
	{1, 1, "2024-01-15"},
	{0, 2, "2024-02-03"},
	{3, 1, "2024-02-20"},
	{4, 5, "2024-03-01"},
	{5, 20, "2024-03-01"},
	{2, 200, "2024-03-12"},
	{6, 2, "2024-04-07"},
	{1, 2, "2024-04-18"},
	{3, 1, "2024-05-02"},
}

func main() {
	username := flag.String("username", "demo", "usuário de demonstração")
	password := flag.String("password", "Demo@1234", "senha do usuário de demonstração")
	flag.Parse()

	log.L.Info("Iniciando carga inicial...")

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("ERRO ao carregar configurações")
	}
	log.Configure(cfg.App.LogLevel)

	if cfg.Database.Driver != config.DriverPostgres {
		log.L.Fatalf("ERRO: carga inicial exige o driver postgres (atual: %s)", cfg.Database.Driver)
	}

	if err := migration.Run(cfg.Database.DSN, migration.CommandUp); err != nil {
		log.L.WithError(err).Fatal("ERRO ao aplicar migrações")
	}

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()
	log.L.Info("Conexão com o banco de dados estabelecida com sucesso")

	productRepo := repository.NewProductRepository(conn)
	saleRepo := repository.NewSaleRepository(conn)
	userRepo := repository.NewUserRepository(conn)

	authService := authenticating.NewService(userRepo, cfg)
	catalogService := cataloging.NewService(conn, productRepo)
	recorder := recording.NewService(conn, productRepo, saleRepo, nil)

	startTime := time.Now()

	user, err := ensureUser(ctx, authService, userRepo, *username, *password)
	if err != nil {
		log.L.WithError(err).Fatal("ERRO ao preparar usuário de demonstração")
	}

	productIDs := insertProducts(ctx, catalogService)
	insertSales(ctx, recorder, user.ID, productIDs)

	log.L.Infof("Carga inicial concluída em %v!", time.Since(startTime))
}

func ensureUser(
	ctx context.Context,
	authService authenticating.Authenticator,
	userRepo repository.UserRepository,
	username, password string,
) (*domain.User, error) {
	user, err := authService.Register(ctx, domain.Credentials{Username: username, Password: password})
	if err == nil {
		log.L.Infof("Usuário %s criado", username)
		return user, nil
	}

	if !errors.Is(err, authenticating.ErrUserAlreadyExists) {
		return nil, err
	}

	log.L.Infof("Usuário %s já existe, reaproveitando", username)
	existing, err := userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}
	return existing, nil
}

func insertProducts(ctx context.Context, catalogService cataloging.Catalog) []int {
	log.L.Infof("Iniciando inserção de %d produtos...", len(catalog))

	ids := make([]int, len(catalog))
	successCount := 0
	errorCount := 0

	for i, p := range catalog {
		req := domain.CreateProductRequest{
			Name:  p.Name,
			Price: decimal.RequireFromString(p.Price),
		}
		if p.Category != "" {
			category := p.Category
			req.Category = &category
		}

		product, err := catalogService.CreateProduct(ctx, req)
		if err != nil {
			log.L.WithError(err).Errorf("ERRO ao inserir produto [%d/%d] %s", i+1, len(catalog), p.Name)
			errorCount++
			continue
		}
		ids[i] = product.ID
		successCount++
	}

	log.L.Infof("Inserção de produtos concluída. Sucesso: %d, Erros: %d", successCount, errorCount)
	return ids
}

func insertSales(ctx context.Context, recorder recording.Recorder, userID int, productIDs []int) {
	log.L.Infof("Iniciando inserção de %d vendas...", len(sales))

	successCount := 0
	errorCount := 0

	for i, s := range sales {
		productID := productIDs[s.Product]
		if productID == 0 {
			log.L.Warnf("AVISO: produto %s não foi cadastrado, venda ignorada", catalog[s.Product].Name)
			errorCount++
			continue
		}

		_, err := recorder.RecordSale(ctx, userID, domain.RecordSaleInput{
			ProductID: productID,
			Quantity:  s.Quantity,
			OrderDate: s.Date,
		})
		if err != nil {
			log.L.WithError(err).Errorf("ERRO ao inserir venda [%d/%d]", i+1, len(sales))
			errorCount++
			continue
		}
		successCount++
	}

	log.L.Infof("Inserção de vendas concluída. Sucesso: %d, Erros: %d", successCount, errorCount)
}
