package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
)

func handleErrorResponse(t *testing.T, err error) (*nethttp.Response, dto.ErrorResponse, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return handleError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(nethttp.MethodGet, "/boom", nil))
	require.NoError(t, reqErr)
	body, reqErr := io.ReadAll(resp.Body)
	require.NoError(t, reqErr)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return resp, e, string(body)
}

func TestHandleError_MapeoDeSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidOperation, fiber.StatusUnprocessableEntity, "INVALID_OPERATION"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		resp, e, _ := handleErrorResponse(t, fmt.Errorf("contexto: %w", tc.err))
		assert.Equal(t, tc.status, resp.StatusCode, tc.code)
		assert.Equal(t, tc.code, e.Code)
	}
}

func TestHandleError_PaymentErrorEs402ConCodigo(t *testing.T) {
	pErr := &domain.PaymentError{Code: "card_declined", Message: "tarjeta rechazada"}
	resp, e, _ := handleErrorResponse(t, fmt.Errorf("cargo: %w", pErr))

	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "card_declined", e.Code)
}

func TestHandleError_ErrorDesconocidoNoFiltraInternos(t *testing.T) {
	// Un error de infraestructura envuelto nunca llega al cliente: cuerpo
	// genérico, el detalle queda en el log del servidor.
	interno := fmt.Errorf("insert product: %w",
		errors.New(`pq: password authentication failed for user "postgres" at 10.0.0.7:5432`))
	resp, e, body := handleErrorResponse(t, interno)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", e.Code)
	assert.Equal(t, "error interno", e.Message)
	assert.NotContains(t, body, "postgres")
	assert.NotContains(t, body, "10.0.0.7")
	assert.NotContains(t, body, "insert product")
}
