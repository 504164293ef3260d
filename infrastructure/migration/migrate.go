// Package migration aplica o esquema do Postgres a partir dos arquivos SQL embutidos
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/kr1shnav/sales-dashboard/pkg/log"
)

const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandVersion = "version"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator envolve o golang-migrate. Usa uma conexão própria porque o driver
// fecha o *sql.DB recebido no Close.
type Migrator struct {
	m *migrate.Migrate
}

func New(dsn string) (*Migrator, error) {
	migrateDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir conexão de migração: %w", err)
	}

	driver, err := postgres.WithInstance(migrateDB, &postgres.Config{})
	if err != nil {
		_ = migrateDB.Close()
		return nil, fmt.Errorf("criar driver postgres: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("criar fonte iofs: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("criar instância de migração: %w", err)
	}

	return &Migrator{m: m}, nil
}

func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migrações: %w", err)
	}
	return nil
}

// Down desfaz apenas a última migração
func (m *Migrator) Down() error {
	if err := m.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("desfazer migração: %w", err)
	}
	return nil
}

func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	return errors.Join(sourceErr, dbErr)
}

// Run executa um comando de migração e fecha a conexão ao final
func Run(dsn, command string) error {
	migrator, err := New(dsn)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.L.WithError(err).Warn("Erro ao fechar conexão de migração")
		}
	}()

	switch command {
	case CommandUp:
		err = migrator.Up()
	case CommandDown:
		err = migrator.Down()
	case CommandVersion:
		version, dirty, vErr := migrator.Version()
		if vErr != nil {
			return vErr
		}
		log.L.WithFields(log.Fields{"version": version, "dirty": dirty}).Infof("Versão do esquema: %d", version)
		return nil
	default:
		return fmt.Errorf("comando de migração desconhecido: %s", command)
	}
	if err != nil {
		return err
	}

	log.L.WithField("command", command).Info("Migração concluída")
	return nil
}

// Files lista os arquivos embutidos, em ordem de versão
func Files() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
