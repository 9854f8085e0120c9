package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/pkg/logger"
)

// SummaryProvider calcula el resumen del dashboard para un mes.
type SummaryProvider interface {
	SummaryFor(ctx context.Context, month time.Time) (*dto.DashboardSummaryDTO, error)
}

// Scheduler ejecuta el cierre mensual: registra el resumen del mes anterior como un evento estructurado.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	summary  SummaryProvider
	log      *logger.Logger
}

// NewScheduler crea el scheduler. schedule usa el formato estándar de cron de 5 campos;
// vacío desactiva el cierre mensual.
func NewScheduler(schedule string, summary SummaryProvider, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		schedule: schedule,
		summary:  summary,
		log:      log,
	}
}

// Start registra el job y arranca el cron.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.log.Info().Msg("cierre mensual desactivado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.monthlyClose); err != nil {
		return fmt.Errorf("scheduler: programar cierre mensual %q: %w", s.schedule, err)
	}
	s.log.Info().Str("schedule", s.schedule).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) monthlyClose() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.RunMonthlyClose(ctx, time.Now()); err != nil {
		s.log.Error().Err(err).Msg("cierre mensual fallido")
	}
}

// RunMonthlyClose calcula el resumen del mes anterior a now y lo registra.
func (s *Scheduler) RunMonthlyClose(ctx context.Context, now time.Time) error {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	sum, err := s.summary.SummaryFor(ctx, prev)
	if err != nil {
		return err
	}
	s.log.Info().
		Str("month", sum.Month).
		Int("total_orders", sum.TotalOrders).
		Str("total_income", sum.TotalIncome.String()).
		Str("base_expenses", sum.BaseExpenses.String()).
		Str("stock_purchases", sum.StockPurchases.String()).
		Str("total_expenses", sum.TotalExpenses.String()).
		Str("profit_loss", sum.ProfitLoss.String()).
		Str("current_stock_value", sum.CurrentStockValue.String()).
		Msg("cierre mensual")
	return nil
}
