package main

import (
	"flag"
	"os"

	"github.com/kr1shnav/sales-dashboard/infrastructure/migration"
	"github.com/kr1shnav/sales-dashboard/internal/config"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
)

func main() {
	cmd := flag.String("cmd", migration.CommandUp, "comando de migração: up|down|version")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configurações")
	}

	log.Configure(cfg.App.LogLevel)

	if cfg.Database.Driver != config.DriverPostgres {
		log.L.Errorf("Migrações só se aplicam ao driver postgres (atual: %s)", cfg.Database.Driver)
		os.Exit(1)
	}

	if err := migration.Run(cfg.Database.DSN, *cmd); err != nil {
		log.L.WithError(err).Fatal("Erro ao executar migração")
	}
}
