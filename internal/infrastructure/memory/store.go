// Package memory implementa todos los repositorios sobre estructuras en memoria.
// Se usa como driver de desarrollo (STORE_DRIVER=memory) y como fake en tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state es la "base de datos" completa. Las transacciones trabajan sobre un clon.
type state struct {
	stock     map[string]entity.StockItem
	additions []entity.StockAddition
	usage     []entity.UsageRecord
	orders    map[string]entity.Order
	orderSeq  []string // orden de inserción de pedidos
	users     map[string]entity.User
	expenses  []entity.Expense
	quotes    []entity.Quote
}

func newState() *state {
	return &state{
		stock:  make(map[string]entity.StockItem),
		orders: make(map[string]entity.Order),
		users:  make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		stock:     make(map[string]entity.StockItem, len(s.stock)),
		additions: append([]entity.StockAddition(nil), s.additions...),
		usage:     append([]entity.UsageRecord(nil), s.usage...),
		orders:    make(map[string]entity.Order, len(s.orders)),
		orderSeq:  append([]string(nil), s.orderSeq...),
		users:     make(map[string]entity.User, len(s.users)),
		expenses:  append([]entity.Expense(nil), s.expenses...),
		quotes:    append([]entity.Quote(nil), s.quotes...),
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store contenedor en memoria. Un único mutex serializa escrituras y transacciones.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// conn es lo que ven los repositorios: el store compartido o el clon de una tx en curso.
type conn struct {
	store *Store
	tx    *state
}

func (c conn) do(fn func(st *state) error) error {
	if c.tx != nil {
		return fn(c.tx)
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return fn(c.store.st)
}

func (s *Store) conn() conn { return conn{store: s} }

// Run ejecuta fn sobre una copia del estado con el store bloqueado.
// Si fn devuelve error la copia se descarta; si no, reemplaza al estado vigente.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	additionRepo repository.StockAdditionRepository,
	usageRepo repository.UsageRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	c := conn{store: s, tx: tx}
	if err := fn(&StockRepo{c: c}, &StockAdditionRepo{c: c}, &UsageRepo{c: c}, &OrderRepo{c: c}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// StockRepository repositorio de stock fuera de transacción.
func (s *Store) StockRepository() *StockRepo { return &StockRepo{c: s.conn()} }

// StockAdditionRepository repositorio de reposiciones fuera de transacción.
func (s *Store) StockAdditionRepository() *StockAdditionRepo {
	return &StockAdditionRepo{c: s.conn()}
}

// UsageRepository repositorio de consumos fuera de transacción.
func (s *Store) UsageRepository() *UsageRepo { return &UsageRepo{c: s.conn()} }

// OrderRepository repositorio de pedidos fuera de transacción.
func (s *Store) OrderRepository() *OrderRepo { return &OrderRepo{c: s.conn()} }

// UserRepository repositorio de usuarios.
func (s *Store) UserRepository() *UserRepo { return &UserRepo{c: s.conn()} }

// ExpenseRepository repositorio de gastos.
func (s *Store) ExpenseRepository() *ExpenseRepo { return &ExpenseRepo{c: s.conn()} }

// QuoteRepository repositorio de cotizaciones.
func (s *Store) QuoteRepository() *QuoteRepo { return &QuoteRepo{c: s.conn()} }

// AnalyticsRepository consultas agregadas del dashboard.
func (s *Store) AnalyticsRepository() *AnalyticsRepo { return &AnalyticsRepo{c: s.conn()} }
