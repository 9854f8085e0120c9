package repository

import (
	"context"

	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// QuoteRepository puerto de persistencia de solicitudes de cotización.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	List(ctx context.Context) ([]*entity.Quote, error)
}
