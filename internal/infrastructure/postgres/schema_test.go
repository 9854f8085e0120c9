package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_MontosSinEscalaFija(t *testing.T) {
	fixed := regexp.MustCompile(`(?i)NUMERIC\s*\(`)
	assert.Empty(t, fixed.FindAllString(schemaSQL, -1),
		"las columnas NUMERIC no deben redondear al escribir")

	for _, col := range []string{
		"ALTER COLUMN quantity     TYPE NUMERIC",
		"ALTER COLUMN unit_cost    TYPE NUMERIC",
		"ALTER COLUMN total_amount TYPE NUMERIC",
		"ALTER COLUMN total_amount_added TYPE NUMERIC",
		"ALTER COLUMN quantity_used TYPE NUMERIC",
	} {
		assert.Contains(t, schemaSQL, col)
	}
}
