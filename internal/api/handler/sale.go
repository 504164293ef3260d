package handler

import (
	"net/http"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/recording"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/utils"
)

// readSaleInput aceita JSON (product_id, quantity, order_date) ou o formulário (product, quantity, date)
func readSaleInput(r *http.Request) (domain.RecordSaleInput, error) {
	var input domain.RecordSaleInput

	if utils.IsFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			return input, err
		}
		input.ProductID = utils.FormInt(r, "product")
		input.Quantity = utils.FormInt(r, "quantity")
		input.OrderDate = utils.FormString(r, "date")
		return input, nil
	}

	err := decodeJSON(r, &input)
	return input, err
}

func RecordSale(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		input, err := readSaleInput(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		sale, err := service.RecordSale(r.Context(), userID, input)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, sale)
	}
}

// ListSales devolve o livro-razão do usuário autenticado
func ListSales(service recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		entries, err := service.ListSales(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if entries == nil {
			entries = []*domain.LedgerEntry{}
		}
		writeJSON(w, r, http.StatusOK, entries)
	}
}
