package middleware

import (
	"net/http"

	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
)

// RequireUser barra a rota quando não há um usuário autenticado no contexto.
// Toda leitura e escrita do livro-razão depende desse usuário.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := UserFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			log.ForContext(r.Context()).WithField("user_id", claims.UserID).Debug("Usuário autenticado")

			next.ServeHTTP(w, r)
		})
	}
}
