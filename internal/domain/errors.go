package domain

import (
	"errors"
	"fmt"
)

// Categorias de erro do domínio de vendas
var (
	ErrValidation       = errors.New("dados inválidos")
	ErrNotFound         = errors.New("registro não encontrado")
	ErrIntegrity        = errors.New("violação de integridade")
	ErrIsolationFailure = errors.New("conflito de concorrência na transação")
)

var (
	ErrInvalidQuantity = fmt.Errorf("%w: a quantidade deve ser um inteiro positivo", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: a data deve estar no formato AAAA-MM-DD", ErrValidation)
	ErrTotalOutOfRange = fmt.Errorf("%w: o total da venda excede o limite permitido", ErrValidation)
	ErrInvalidPrice    = fmt.Errorf("%w: o preço não pode ser negativo", ErrValidation)
	ErrProductNotFound = fmt.Errorf("%w: produto não encontrado", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: usuário não encontrado", ErrNotFound)
	ErrUsernameTaken   = fmt.Errorf("%w: nome de usuário já existe", ErrIntegrity)
)

// DomainError carrega o código da API e o campo afetado junto com o erro base
type DomainError struct {
	Err     error
	Code    string
	Field   string
	Details string
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewDomainError(baseErr error, code string, details string) *DomainError {
	return &DomainError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewFieldError(baseErr error, code string, field string, details string) *DomainError {
	return &DomainError{
		Err:     baseErr,
		Code:    code,
		Field:   field,
		Details: details,
	}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient indica falhas que o cliente pode repetir sem alterar a requisição
func IsTransient(err error) bool {
	return errors.Is(err, ErrIsolationFailure)
}
