package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/payment"
)

// PaymentHandler maneja cargos y consultas de settlements (protegido).
type PaymentHandler struct {
	uc *payment.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Charge godoc
// @Summary      Cobrar una orden pending y registrar el settlement
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChargeRequest  true  "Datos del cargo"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse  "Rechazo de la pasarela (code del gateway)"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/charge [post]
func (h *PaymentHandler) Charge(c *fiber.Ctx) error {
	var in dto.ChargeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ProcessPayment(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSettlement godoc
// @Summary      Obtener settlement (miembros del proveedor o admin)
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del settlement"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settlements/{id} [get]
func (h *PaymentHandler) GetSettlement(c *fiber.Ctx) error {
	out, err := h.uc.GetSettlement(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListSettlements godoc
// @Summary      Listar settlements del proveedor (miembros o admin)
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del proveedor"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.SettlementResponse
// @Router       /api/suppliers/{id}/settlements [get]
func (h *PaymentHandler) ListSettlements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListSettlements(GetPrincipal(c), c.Params("id"), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF de un settlement
// @Tags         payments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del settlement"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settlements/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.uc.GenerateReceipt(GetPrincipal(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
