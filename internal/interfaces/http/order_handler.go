package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/imprenta-api/internal/application/dto"
	"github.com/jhoicas/imprenta-api/internal/application/orders"
)

// OrderHandler maneja pedidos de clientes y su gestión por el personal.
type OrderHandler struct {
	svc *orders.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Place godoc
// @Summary      Crear pedido (cliente)
// @Tags         customer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "product_name, size, colour, quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customer/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.PlaceOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Pedidos del cliente autenticado
// @Tags         customer
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (vacío = mes actual)"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/customer/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.svc.ListCustomerOrders(c.UserContext(), GetUserID(c), c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMonth godoc
// @Summary      Pedidos del mes con ítems usados
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (vacío = mes actual)"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMonth(c *fiber.Ctx) error {
	out, err := h.svc.ListOrdersForMonth(c.UserContext(), c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOpen godoc
// @Summary      Pedidos pendientes o en proceso
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/open [get]
func (h *OrderHandler) ListOpen(c *fiber.Ctx) error {
	out, err := h.svc.ListOpenOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Pending | In Progress | Completed"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddPayment godoc
// @Summary      Registrar pago (suma al monto pagado)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del pedido"
// @Param        body  body  dto.AddPaymentRequest  true  "amount"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id}/payments [post]
func (h *OrderHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.AddPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.AddPayment(c.UserContext(), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTotalCost godoc
// @Summary      Fijar costo total del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del pedido"
// @Param        body  body  dto.UpdateTotalCostRequest  true  "total_cost"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id}/total-cost [patch]
func (h *OrderHandler) UpdateTotalCost(c *fiber.Ctx) error {
	var in dto.UpdateTotalCostRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.UpdateTotalCost(c.UserContext(), c.Params("id"), in.TotalCost)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar pedido (dueño)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del pedido"
// @Param        body  body  dto.EditOrderRequest  true  "campos del pedido"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Edit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido y sus consumos
// @Description  El stock consumido no se restituye.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido eliminado"})
}
