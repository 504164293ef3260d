package rendering

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONRenderer exporta o relatório como está, com um indicador de painel vazio
type JSONRenderer struct{}

type jsonReport struct {
	*domain.SalesReport
	Empty bool `json:"empty"`
}

func (JSONRenderer) ContentType() string {
	return "application/json"
}

func (JSONRenderer) Render(w io.Writer, report *domain.SalesReport) error {
	return json.NewEncoder(w).Encode(jsonReport{
		SalesReport: normalize(report),
		Empty:       report.IsEmpty(),
	})
}
