package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/kr1shnav/sales-dashboard/internal/scheduler"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
)

const CronJobTypeLedgerStats = "ledger-stats"

// CronJobServices contém os serviços de cron que podem ser disparados manualmente
type CronJobServices struct {
	LedgerStatsService *scheduler.LedgerStatsService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeLedgerStats:
			if services.LedgerStatsService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de estatísticas não disponível", nil)
				return
			}
			services.LedgerStatsService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: ledger-stats", nil)
			return
		}

		log.ForContext(r.Context()).WithField("job", cronType).Info("Cron job disparada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.LedgerStatsService != nil {
			status[CronJobTypeLedgerStats] = services.LedgerStatsService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
