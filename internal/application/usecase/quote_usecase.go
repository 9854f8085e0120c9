package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

// QuoteUseCase solicitudes de cotización del sitio público.
type QuoteUseCase struct {
	repo repository.QuoteRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(repo repository.QuoteRepository) *QuoteUseCase {
	return &QuoteUseCase{repo: repo}
}

// Submit registra una cotización. Nombre, teléfono y producto son obligatorios.
func (uc *QuoteUseCase) Submit(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	q := &entity.Quote{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.TrimSpace(in.Email),
		Product:  strings.TrimSpace(in.Product),
		Quantity: in.Quantity,
		Message:  strings.TrimSpace(in.Message),
		Date:     time.Now().UTC(),
	}
	if q.Name == "" || q.Phone == "" || q.Product == "" {
		return nil, fmt.Errorf("%w: name, phone y product son requeridos", domain.ErrInvalidInput)
	}
	if q.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if err := uc.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// List cotizaciones, más recientes primero.
func (uc *QuoteUseCase) List(ctx context.Context) ([]dto.QuoteResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *toQuoteResponse(q))
	}
	return out, nil
}

// Count cantidad total de cotizaciones.
func (uc *QuoteUseCase) Count(ctx context.Context) (int, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:       q.ID,
		Name:     q.Name,
		Phone:    q.Phone,
		Email:    q.Email,
		Product:  q.Product,
		Quantity: q.Quantity,
		Message:  q.Message,
		Date:     q.Date,
	}
}
