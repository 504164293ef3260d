package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"

	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/internal/usecases/cataloging"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/utils"
)

// readProductForm lê o formulário de cadastro (name, category, price)
func readProductForm(r *http.Request) (domain.CreateProductRequest, error) {
	req := domain.CreateProductRequest{}
	if err := r.ParseForm(); err != nil {
		return req, err
	}

	price, err := decimal.NewFromString(utils.FormString(r, "price"))
	if err != nil {
		return req, domain.NewFieldError(domain.ErrInvalidPrice, apiErrors.ErrInvalidPrice, "price", "valor não numérico")
	}

	req.Name = utils.FormString(r, "name")
	req.Category = utils.FormOptionalString(r, "category")
	req.Price = price
	return req, nil
}

func CreateProduct(service cataloging.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			req domain.CreateProductRequest
			err error
		)

		if utils.IsFormRequest(r) {
			req, err = readProductForm(r)
		} else {
			err = decodeJSON(r, &req)
		}
		if err != nil {
			if domain.IsValidation(err) {
				writeServiceError(w, r, err)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		product, err := service.CreateProduct(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, product)
	}
}

// UpdateProduct altera preço e categoria de um produto existente
func UpdateProduct(service cataloging.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil || id <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		var req domain.UpdateProductRequest
		if err := decodeJSON(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = id

		product, err := service.UpdateProduct(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, product)
	}
}

func ListProducts(service cataloging.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := service.ListProducts(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if products == nil {
			products = []*domain.Product{}
		}
		writeJSON(w, r, http.StatusOK, products)
	}
}
