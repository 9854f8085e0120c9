package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/imprenta-api/internal/application/billing"
)

// BillHandler descarga de facturas en PDF.
type BillHandler struct {
	uc *billing.BillUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.BillUseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Download godoc
// @Summary      Factura PDF de uno o varios pedidos
// @Description  ids separados por coma. Un cliente solo puede facturar sus propios pedidos.
// @Tags         bills
// @Security     Bearer
// @Produce      application/pdf
// @Param        ids  path  string  true  "IDs de pedido separados por coma"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{ids} [get]
func (h *BillHandler) Download(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DownloadBillPDF(c.UserContext(), c.Params("ids"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
