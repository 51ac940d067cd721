// Package stripegw adapta la pasarela Stripe al puerto payment.Gateway.
package stripegw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/jhoicas/marketplace-api/internal/application/payment"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/pkg/config"
)

var _ payment.Gateway = (*Gateway)(nil)

// Gateway cliente de cargos contra Stripe con timeout de red acotado.
type Gateway struct {
	sc      *client.API
	timeout time.Duration
	log     zerolog.Logger
}

// New construye el adaptador con la clave secreta y el timeout configurados.
func New(cfg config.StripeConfig, log zerolog.Logger) *Gateway {
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	})
	sc := &client.API{}
	sc.Init(cfg.SecretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
	return &Gateway{sc: sc, timeout: timeout, log: log}
}

// Charge ejecuta un cargo. Un rechazo de Stripe se traduce a *domain.PaymentError
// con el código de la pasarela; un fallo de red usa el código "network".
func (g *Gateway) Charge(ctx context.Context, in payment.GatewayCharge) (*payment.ChargeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(in.AmountMinor),
		Currency:    stripe.String(in.Currency),
		Description: stripe.String(in.Description),
	}
	params.Context = ctx
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	if err := params.SetSource(in.SourceToken); err != nil {
		return nil, &domain.PaymentError{Code: "invalid_token", Message: err.Error()}
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	ch, err := g.sc.Charges.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			code := string(stripeErr.Code)
			if code == "" {
				code = string(stripeErr.Type)
			}
			return nil, &domain.PaymentError{Code: code, Message: stripeErr.Msg}
		}
		// Sin respuesta de Stripe: timeout o fallo de red.
		g.log.Warn().Err(err).Msg("sin respuesta de Stripe")
		return nil, &domain.PaymentError{Code: "network", Message: err.Error()}
	}
	if ch.Status != stripe.ChargeStatusSucceeded {
		return nil, &domain.PaymentError{
			Code:    string(ch.Status),
			Message: fmt.Sprintf("cargo %s en estado %s", ch.ID, ch.Status),
		}
	}
	return &payment.ChargeResult{
		TransactionID: ch.ID,
		Status:        string(ch.Status),
	}, nil
}
