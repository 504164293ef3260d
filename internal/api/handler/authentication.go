package handler

import (
	"net/http"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/authenticating"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/utils"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// readCredentials aceita JSON ou o formulário de login/cadastro (username, password)
func readCredentials(r *http.Request) (domain.Credentials, error) {
	var credentials domain.Credentials

	if utils.IsFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return credentials, err
		}
		credentials.Username = utils.FormString(r, "username")
		credentials.Password = r.FormValue("password")
		return credentials, nil
	}

	err := decodeJSON(r, &credentials)
	return credentials, err
}

func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credentials, err := readCredentials(r)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Requisição de cadastro inválida")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		user, err := service.Register(r.Context(), credentials)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	}
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credentials, err := readCredentials(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), credentials.Username, credentials.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, TokenResponse{Token: token})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

// ChangePassword altera a senha do próprio usuário autenticado
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
