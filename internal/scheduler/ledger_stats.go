// Package scheduler contém os jobs agendados que acompanham o livro-razão
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/kr1shnav/sales-dashboard/infrastructure/repository"
	"github.com/kr1shnav/sales-dashboard/internal/config"
	"github.com/kr1shnav/sales-dashboard/pkg/log"
	"github.com/kr1shnav/sales-dashboard/pkg/metrics"
)

const LedgerStatsJob = "ledger_stats"

type LedgerStatsConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// LedgerStats é a última contagem publicada nas métricas
type LedgerStats struct {
	Products int `json:"products"`
	Sales    int `json:"sales"`
}

// LedgerStatsService publica periodicamente o tamanho do catálogo e do livro-razão.
// Só lê contagens; nunca altera vendas já gravadas.
type LedgerStatsService struct {
	scheduler           *gocron.Scheduler
	productRepo         repository.ProductRepository
	saleRepo            repository.SaleRepository
	ledgerMetrics       *metrics.LedgerMetrics
	cronMetrics         *metrics.CronJobMetrics
	config              LedgerStatsConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastStats           LedgerStats
	lastError           string
}

func NewLedgerStatsService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	ledgerMetrics *metrics.LedgerMetrics,
	cronMetrics *metrics.CronJobMetrics,
	cfg *config.Config,
) *LedgerStatsService {
	statsConfig := LedgerStatsConfig{
		CronSchedule: cfg.LedgerStats.CronSchedule,
		SyncEnabled:  cfg.LedgerStats.Enabled,
	}

	log.L.WithFields(log.Fields{
		"job":           LedgerStatsJob,
		"cron_schedule": statsConfig.CronSchedule,
	}).Info("Configuração do agendador de estatísticas do livro-razão carregada")

	return &LedgerStatsService{
		scheduler:     gocron.NewScheduler(time.Local),
		productRepo:   productRepo,
		saleRepo:      saleRepo,
		ledgerMetrics: ledgerMetrics,
		cronMetrics:   cronMetrics,
		config:        statsConfig,
	}
}

func (s *LedgerStatsService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.WithField("job", LedgerStatsJob).Info("Cron de estatísticas do livro-razão desabilitada por configuração")
		return nil
	}

	log.L.WithField("job", LedgerStatsJob).Infof("Iniciando cron de estatísticas do livro-razão (%s)", s.config.CronSchedule)

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RefreshStats(ctx); err != nil {
			log.L.WithError(err).WithField("job", LedgerStatsJob).Error("Erro na atualização das estatísticas do livro-razão")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar estatísticas do livro-razão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.WithField("job", LedgerStatsJob).Info("Parando cron de estatísticas do livro-razão")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshStats conta produtos e vendas e publica nos gauges. Execuções concorrentes
// são descartadas e devolvem a última contagem conhecida.
func (s *LedgerStatsService) RefreshStats(ctx context.Context) (LedgerStats, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		stats := s.lastStats
		s.syncMutex.Unlock()
		log.L.WithField("job", LedgerStatsJob).Warn("Atualização de estatísticas já está em execução")
		return stats, nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	stats, err := s.collect(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.cronMetrics.ObserveDuration(LedgerStatsJob, s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt))

	if err != nil {
		s.lastError = err.Error()
		s.cronMetrics.IncFailure(LedgerStatsJob)
		return s.lastStats, err
	}

	s.lastError = ""
	s.lastStats = stats
	s.ledgerMetrics.SetTotals(stats.Products, stats.Sales)
	s.cronMetrics.IncSuccess(LedgerStatsJob)

	log.L.WithFields(log.Fields{
		"job":      LedgerStatsJob,
		"products": stats.Products,
		"sales":    stats.Sales,
	}).Info("Estatísticas do livro-razão atualizadas")

	return stats, nil
}

func (s *LedgerStatsService) collect(ctx context.Context) (LedgerStats, error) {
	products, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		return LedgerStats{}, fmt.Errorf("erro ao contar produtos: %w", err)
	}

	sales, err := s.saleRepo.CountSales(ctx)
	if err != nil {
		return LedgerStats{}, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	return LedgerStats{Products: products, Sales: sales}, nil
}

// TriggerManualSync dispara uma atualização fora do agendamento
func (s *LedgerStatsService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.WithField("job", LedgerStatsJob).Info("Atualização de estatísticas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	log.L.WithField("job", LedgerStatsJob).Info("Iniciando atualização manual das estatísticas do livro-razão")
	go func() {
		if _, err := s.RefreshStats(context.Background()); err != nil {
			log.L.WithError(err).WithField("job", LedgerStatsJob).Error("Erro na atualização manual das estatísticas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *LedgerStatsService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_stats":             s.lastStats,
		"last_error":             s.lastError,
	}
}
