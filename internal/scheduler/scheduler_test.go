package scheduler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/scheduler"
	"github.com/jhoicas/imprenta-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummary struct {
	month time.Time
	err   error
}

func (s *stubSummary) SummaryFor(_ context.Context, month time.Time) (*dto.DashboardSummaryDTO, error) {
	s.month = month
	if s.err != nil {
		return nil, s.err
	}
	return &dto.DashboardSummaryDTO{Month: month.Format("2006-01"), TotalOrders: 4, ProfitLoss: decimal.NewFromInt(120)}, nil
}

func TestRunMonthlyClose_UsaMesAnterior(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Out: &buf})
	stub := &stubSummary{}
	s := scheduler.NewScheduler("0 6 1 * *", stub, log)

	require.NoError(t, s.RunMonthlyClose(context.Background(), time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), stub.month)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cierre mensual", entry["message"])
	assert.Equal(t, "2023-12", entry["month"])
	assert.Equal(t, "120", entry["profit_loss"])
}

func TestRunMonthlyClose_PropagaError(t *testing.T) {
	s := scheduler.NewScheduler("0 6 1 * *", &stubSummary{err: errors.New("db caída")}, nil)
	assert.Error(t, s.RunMonthlyClose(context.Background(), time.Now()))
}

func TestStart_ScheduleInvalido(t *testing.T) {
	s := scheduler.NewScheduler("cada lunes", &stubSummary{}, nil)
	assert.Error(t, s.Start())
}

func TestStart_VacioDesactiva(t *testing.T) {
	s := scheduler.NewScheduler("", &stubSummary{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
