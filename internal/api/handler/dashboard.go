package handler

import (
	"bytes"
	"net/http"

	"github.com/kr1shnav/sales-dashboard/internal/rendering"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/reporting"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
)

// Dashboard monta o relatório do usuário e entrega no formato pedido em ?format=
func Dashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		renderer, err := rendering.ForFormat(r.URL.Query().Get("format"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]string{"field": "format"})
			return
		}

		report, err := service.BuildDashboard(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		// renderiza em memória para não enviar meia resposta em caso de erro
		var buf bytes.Buffer
		if err := renderer.Render(&buf, report); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao renderizar painel")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar painel", nil)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
		}
	}
}
