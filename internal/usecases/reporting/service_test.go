package reporting

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kr1shnav/sales-dashboard/infrastructure/repository/mocks"
	"github.com/kr1shnav/sales-dashboard/internal/domain"
	"github.com/kr1shnav/sales-dashboard/pkg/apiErrors"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/metrics"
)

func TestService_BuildDashboard(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name         string
		setup        func(repo *mocks.MockSaleRepository)
		expectedCode string
		validate     func(t *testing.T, report *domain.SalesReport)
	}{
		{
			name: "consulta apenas o usuário autenticado",
			setup: func(repo *mocks.MockSaleRepository) {
				repo.EXPECT().ListSalesForUser(gomock.Any(), 7).Return([]*domain.LedgerEntry{
					entry(1, "2024-01-10", "Widget", "Ferramentas", "30.00"),
				}, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport) {
				assert.Equal(t, 1, report.KPIs.TotalSalesCount)
				assert.Equal(t, "Widget", *report.KPIs.TopProduct)
			},
		},
		{
			name: "livro-razão vazio não é erro",
			setup: func(repo *mocks.MockSaleRepository) {
				repo.EXPECT().ListSalesForUser(gomock.Any(), 7).Return(nil, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport) {
				assert.True(t, report.IsEmpty())
			},
		},
		{
			name: "erro do banco",
			setup: func(repo *mocks.MockSaleRepository) {
				repo.EXPECT().ListSalesForUser(gomock.Any(), 7).Return(nil, errors.New("conexão recusada"))
			},
			expectedCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSaleRepository(ctrl)
			tt.setup(repo)

			reg := prometheus.NewRegistry()
			service := NewService(repo, DefaultOptions(), metrics.NewLedgerMetrics(reg))

			report, err := service.BuildDashboard(context.Background(), 7)

			if tt.expectedCode != "" {
				var domainErr *domain.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.expectedCode, domainErr.Code)
				return
			}

			require.NoError(t, err)
			tt.validate(t, report)

			count, err := testutil.GatherAndCount(reg, "sales_dashboard_report_build_seconds")
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}
