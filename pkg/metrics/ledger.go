// Package metrics expõe as métricas Prometheus da aplicação
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sales_dashboard"

// Resultados possíveis de um registro de venda
const (
	ResultRecorded = "recorded"
	ResultRejected = "rejected"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultFailed   = "failed"
)

// LedgerMetrics acompanha o tamanho do catálogo e do livro-razão
type LedgerMetrics struct {
	products       prometheus.Gauge
	sales          prometheus.Gauge
	recorded       *prometheus.CounterVec
	reportDuration prometheus.Histogram
}

func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	products := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "products",
		Help:      "Produtos cadastrados no catálogo.",
	})
	sales := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sales",
		Help:      "Vendas gravadas no livro-razão.",
	})
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Tentativas de registro de venda por resultado.",
	}, []string{"result"})
	reportDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_seconds",
		Help:      "Tempo de montagem do painel de vendas.",
		Buckets:   prometheus.DefBuckets,
	})
	reg.MustRegister(products, sales, recorded, reportDuration)
	return &LedgerMetrics{
		products:       products,
		sales:          sales,
		recorded:       recorded,
		reportDuration: reportDuration,
	}
}

func (m *LedgerMetrics) SetTotals(products, sales int) {
	if m == nil || m.products == nil {
		return
	}
	m.products.Set(float64(products))
	m.sales.Set(float64(sales))
}

func (m *LedgerMetrics) IncRecorded(result string) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(result)).Inc()
}

func (m *LedgerMetrics) ObserveReport(duration time.Duration) {
	if m == nil || m.reportDuration == nil {
		return
	}
	m.reportDuration.Observe(duration.Seconds())
}
