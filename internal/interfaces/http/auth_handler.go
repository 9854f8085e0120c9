package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/imprenta-api/internal/application/auth"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
)

// AuthHandler maneja login del personal y de clientes.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión (dueño o trabajador)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CustomerLogin godoc
// @Summary      Ingreso de cliente por teléfono
// @Description  Busca el cliente por teléfono o lo crea; el nombre por defecto es el teléfono.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerLoginRequest  true  "phone, name opcional"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/customer-login [post]
func (h *AuthHandler) CustomerLogin(c *fiber.Ctx) error {
	var in dto.CustomerLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CustomerLogin(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
