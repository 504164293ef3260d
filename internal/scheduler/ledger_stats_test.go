package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/kr1shnav/sales-dashboard/infrastructure/repository/mocks"
	"github.com/kr1shnav/sales-dashboard/internal/config"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, enabled bool) (*LedgerStatsService, *mocks.MockProductRepository, *mocks.MockSaleRepository, *prometheus.Registry) {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	productRepo := mocks.NewMockProductRepository(ctrl)
	saleRepo := mocks.NewMockSaleRepository(ctrl)

	reg := prometheus.NewRegistry()
	cfg := &config.Config{LedgerStats: config.LedgerStats{CronSchedule: "*/15 * * * *", Enabled: enabled}}

	service := NewLedgerStatsService(productRepo, saleRepo, metrics.NewLedgerMetrics(reg), metrics.NewCronJobMetrics(reg), cfg)
	return service, productRepo, saleRepo, reg
}

func TestLedgerStatsService_RefreshStats(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(p *mocks.MockProductRepository, s *mocks.MockSaleRepository)
		expectedStats LedgerStats
		expectedError bool
	}{
		{
			name: "publica contagens de produtos e vendas",
			setup: func(p *mocks.MockProductRepository, s *mocks.MockSaleRepository) {
				p.EXPECT().CountProducts(gomock.Any()).Return(3, nil)
				s.EXPECT().CountSales(gomock.Any()).Return(12, nil)
			},
			expectedStats: LedgerStats{Products: 3, Sales: 12},
		},
		{
			name: "falha ao contar produtos não consulta vendas",
			setup: func(p *mocks.MockProductRepository, s *mocks.MockSaleRepository) {
				p.EXPECT().CountProducts(gomock.Any()).Return(0, errors.New("conexão perdida"))
			},
			expectedError: true,
		},
		{
			name: "falha ao contar vendas",
			setup: func(p *mocks.MockProductRepository, s *mocks.MockSaleRepository) {
				p.EXPECT().CountProducts(gomock.Any()).Return(3, nil)
				s.EXPECT().CountSales(gomock.Any()).Return(0, errors.New("timeout"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, productRepo, saleRepo, _ := newTestService(t, true)
			tt.setup(productRepo, saleRepo)

			stats, err := service.RefreshStats(context.Background())

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])

			if tt.expectedError {
				require.Error(t, err)
				assert.NotEmpty(t, status["last_error"])
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStats, stats)
			assert.Equal(t, tt.expectedStats, status["last_stats"])
			assert.Empty(t, status["last_error"])
		})
	}
}

func TestLedgerStatsService_MetricasPublicadas(t *testing.T) {
	service, productRepo, saleRepo, reg := newTestService(t, true)

	productRepo.EXPECT().CountProducts(gomock.Any()).Return(5, nil)
	saleRepo.EXPECT().CountSales(gomock.Any()).Return(40, nil)

	_, err := service.RefreshStats(context.Background())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "sales_dashboard_job_success_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLedgerStatsService_StartDesabilitado(t *testing.T) {
	service, _, _, _ := newTestService(t, false)

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestLedgerStatsService_StartCronInvalida(t *testing.T) {
	service, _, _, _ := newTestService(t, true)
	service.config.CronSchedule = "não é cron"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
