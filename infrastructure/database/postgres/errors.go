package postgres

import (
	"errors"
	"fmt"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/lib/pq"
)

// Códigos SQLSTATE tratados pelo domínio
const (
	codeNumericOutOfRange    = "22003"
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// TranslateError converte erros do driver nas categorias de erro do domínio,
// preservando o erro original na cadeia.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case codeNumericOutOfRange:
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s: %w", domain.ErrIntegrity, pqErr.Constraint, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s: %w", domain.ErrNotFound, pqErr.Constraint, err)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%w: %w", domain.ErrIsolationFailure, err)
	default:
		return err
	}
}
