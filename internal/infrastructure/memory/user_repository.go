package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/imprenta-api/internal/domain"
	"github.com/jhoicas/imprenta-api/internal/domain/entity"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. username y teléfono de cliente son únicos.
type UserRepo struct {
	c conn
}

// Create inserta un usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.c.do(func(st *state) error {
		for _, u := range st.users {
			if user.Username != "" && strings.EqualFold(u.Username, user.Username) {
				return fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, user.Username)
			}
			if user.Role == entity.RoleCustomer && u.Role == entity.RoleCustomer && u.Phone == user.Phone {
				return fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, user.Phone)
			}
		}
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

// FindByUsername busca personal por usuario (sin distinguir mayúsculas).
func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool {
		return u.Username != "" && strings.EqualFold(u.Username, username)
	})
}

// FindCustomerByPhone busca un cliente por teléfono.
func (r *UserRepo) FindCustomerByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Role == entity.RoleCustomer && u.Phone == phone })
}

// CountByRole cantidad de usuarios con el rol.
func (r *UserRepo) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	err := r.c.do(func(st *state) error {
		for _, u := range st.users {
			if u.Role == role {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *UserRepo) find(match func(u entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.c.do(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
