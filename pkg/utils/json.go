package utils

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON serializa v com o status informado
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(v)
}

// PrettyJSON é usado nos logs de depuração dos scripts
func PrettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return ""
	}
	return string(out)
}
