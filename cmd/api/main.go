package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kr1shnav/sales-dashboard/infrastructure/database/postgres"
	"github.com/kr1shnav/sales-dashboard/infrastructure/migration"
	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/infrastructure/repository/memory"
	"github.com/kr1shnav/sales-dashboard/internal/api"
	"github.com/kr1shnav/sales-dashboard/internal/config"
	"github.com/kr1shnav/sales-dashboard/internal/scheduler"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/authenticating"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/cataloging"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/recording"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/reporting"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/metrics"
)

// stores reúne os repositórios e o controle de transação do driver escolhido
type stores struct {
	tx       repository.Transactor
	products repository.ProductRepository
	sales    repository.SaleRepository
	users    repository.UserRepository
	close    func()
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configurações")
	}

	level := log.Configure(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := openStores(ctx, cfg)
	defer st.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)
	cronMetrics := metrics.NewCronJobMetrics(registry)

	authenticator := authenticating.NewService(st.users, cfg)
	catalogService := cataloging.NewService(st.tx, st.products)
	recorder := recording.NewService(st.tx, st.products, st.sales, ledgerMetrics)
	reporter := reporting.NewService(st.sales, reporting.Options{
		TopN:        cfg.Report.TopN,
		RecentLimit: cfg.Report.RecentLimit,
	}, ledgerMetrics)

	ledgerStatsService := scheduler.NewLedgerStatsService(st.products, st.sales, ledgerMetrics, cronMetrics, cfg)
	if err := ledgerStatsService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de estatísticas do livro-razão")
	} else {
		log.L.Info("Agendador de estatísticas do livro-razão iniciado")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Catalog:       catalogService,
		Recorder:      recorder,
		Reporter:      reporter,
		LedgerStats:   ledgerStatsService,
		Gatherer:      registry,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar servidor")
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor finalizado com erro")
	}
}

func openStores(ctx context.Context, cfg *config.Config) stores {
	if cfg.Database.Driver == config.DriverMemory {
		log.L.Warn("Usando armazenamento em memória; os dados serão perdidos ao reiniciar")
		store := memory.New()
		return stores{tx: store, products: store, sales: store, users: store, close: func() {}}
	}

	if cfg.Database.AutoMigrate {
		if err := migration.Run(cfg.Database.DSN, migration.CommandUp); err != nil {
			log.L.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	conn := pgconn(ctx, cfg.Database)

	return stores{
		tx:       conn,
		products: repository.NewProductRepository(conn),
		sales:    repository.NewSaleRepository(conn),
		users:    repository.NewUserRepository(conn),
		close: func() {
			if err := conn.Close(); err != nil {
				log.L.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
			}
		},
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		log.L.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
