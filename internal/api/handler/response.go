package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/authenticating"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/middleware"
	"github.com/kr1shnav/sales-dashboard/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeJSON lê o corpo da requisição; campos desconhecidos são ignorados
func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("corpo da requisição vazio")
	}
	return errors.Wrap(json.NewDecoder(r.Body).Decode(dest), "decodificar requisição")
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := utils.WriteJSON(w, status, v); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz erros dos casos de uso para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		var details any
		if domainErr.Field != "" {
			details = map[string]string{"field": domainErr.Field}
		}
		if apiErrors.StatusFor(domainErr.Code) >= http.StatusInternalServerError {
			logger.Error("Erro ao processar requisição")
		}
		apiErrors.WriteError(w, domainErr.Code, domainErr.Error(), details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if apiErrors.StatusFor(authErr.Code) >= http.StatusInternalServerError {
			logger.Error("Erro ao processar requisição de autenticação")
		}
		message := authErr.Details
		if message == "" {
			message = authErr.Error()
		}
		apiErrors.WriteError(w, authErr.Code, message, nil)
		return
	}

	switch {
	case domain.IsTransient(err):
		apiErrors.WriteError(w, apiErrors.ErrIsolationFailure, "Conflito de concorrência, tente novamente", nil)
	case domain.IsValidation(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), nil)
	default:
		logger.Error("Erro não classificado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}

// currentUser devolve o ID do usuário autenticado; a rota deve usar RequireUser
func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return 0, false
	}
	return claims.UserID, true
}
