package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/imprenta-api/internal/domain"
)

func TestParseMonth_VacioUsaMesActual(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	m, err := domain.ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), m)
}

func TestParseMonth_FormatoInvalido(t *testing.T) {
	_, err := domain.ParseMonth("10/2026", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMonthRange_CruceDeAnio(t *testing.T) {
	m, err := domain.ParseMonth("2025-12", time.Now())
	require.NoError(t, err)
	start, end := domain.MonthRange(m)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
