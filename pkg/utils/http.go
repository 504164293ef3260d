package utils

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// IsFormRequest indica se o corpo veio de um formulário HTML em vez de JSON
func IsFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// FormInt lê um campo inteiro do formulário. Valores ausentes ou inválidos viram zero
// e ficam a cargo da validação do domínio.
func FormInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	if err != nil {
		return 0
	}
	return value
}

// FormString devolve o campo sem espaços nas pontas
func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormOptionalString devolve nil para campos ausentes ou em branco
func FormOptionalString(r *http.Request, key string) *string {
	value := FormString(r, key)
	if value == "" {
		return nil
	}
	return &value
}
