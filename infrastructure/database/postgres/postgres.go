package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kr1shnav/sales-dashboard/internal/config"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type Conn interface {
	Queryer(ctx context.Context) Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Connection struct {
	*sql.DB
	isolation sql.IsolationLevel
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	isolation, err := cfg.IsolationLevel()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db, isolation: isolation}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Queryer devolve a transação em andamento no contexto, ou o pool quando não há nenhuma
func (c *Connection) Queryer(ctx context.Context) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return c.DB
}

// RunInTransaction executa fn numa transação carregada pelo contexto.
// Chamadas aninhadas reaproveitam a transação externa.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := c.DB.BeginTx(ctx, &sql.TxOptions{Isolation: c.isolation})
	if err != nil {
		return TranslateError(fmt.Errorf("erro ao iniciar transação: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Warn("Erro ao desfazer transação")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return TranslateError(fmt.Errorf("erro ao confirmar transação: %w", err))
	}

	return nil
}
