// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=transactor.go -destination=mocks/transactor.go -package=mocks

import "context"

// Transactor agrupa operações de repositório numa única unidade atômica.
// Os repositórios usados dentro de fn enxergam a transação através do contexto.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
