package utils

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money converte um valor monetário para float com duas casas, formato esperado pelos gráficos
func Money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	if f == 0 {
		return 0
	}
	return f
}

func FormatInt(n int) string {
	return strconv.Itoa(n)
}
