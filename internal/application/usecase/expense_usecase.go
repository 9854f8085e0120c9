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

// ExpenseUseCase registro de gastos operativos del taller.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso con el puerto de persistencia.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Add registra un gasto con fecha de hoy. Nombre requerido y monto >= 0.
func (uc *ExpenseUseCase) Add(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: expense_name es requerido", domain.ErrInvalidInput)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Name:        name,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        domain.Today(time.Now()),
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List gastos, más recientes primero.
func (uc *ExpenseUseCase) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Name:        e.Name,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
	}
}
