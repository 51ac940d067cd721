// Package settlement implementa la aritmética del reparto de un cargo:
// conversión exacta a unidades menores de la moneda y cálculo de comisión de
// plataforma / neto del proveedor. Todo sobre decimal; los float64 nunca tocan
// un monto.
package settlement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/marketplace-api/internal/domain"
)

// currencyExponents exponente de unidad menor por moneda soportada
// (2 = centavos; 0 = la moneda no tiene subdivisión, ej. JPY/CLP).
var currencyExponents = map[string]int32{
	"usd": 2,
	"eur": 2,
	"gbp": 2,
	"cop": 2,
	"mxn": 2,
	"brl": 2,
	"jpy": 0,
	"clp": 0,
}

// Normalize lleva el código de moneda a su forma canónica (minúsculas, sin espacios).
func Normalize(currency string) string {
	return strings.ToLower(strings.TrimSpace(currency))
}

// Supported indica si la moneda está soportada por la pasarela.
func Supported(currency string) bool {
	_, ok := currencyExponents[Normalize(currency)]
	return ok
}

// Exponent devuelve el exponente de unidad menor de la moneda.
func Exponent(currency string) (int32, error) {
	exp, ok := currencyExponents[Normalize(currency)]
	if !ok {
		return 0, fmt.Errorf("moneda %q no soportada: %w", currency, domain.ErrInvalidInput)
	}
	return exp, nil
}

// ToMinorUnits convierte un monto decimal a la representación entera de la
// pasarela (ej. 100.00 USD → 10000). La conversión es exacta por construcción:
// un monto con más decimales que el exponente de la moneda se rechaza con
// ErrInvalidInput, nunca se redondea en silencio.
func ToMinorUnits(amount decimal.Decimal, currency string) (int64, error) {
	exp, err := Exponent(currency)
	if err != nil {
		return 0, err
	}
	shifted := amount.Shift(exp)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("monto %s excede los %d decimales de %s: %w",
			amount.String(), exp, Normalize(currency), domain.ErrInvalidInput)
	}
	return shifted.IntPart(), nil
}

// Split calcula fee = gross × rate / 100 redondeado a la unidad menor de la
// moneda, y net = gross − fee.
//
// Regla de redondeo fijada: half-up (decimal.Round redondea mitades alejándose
// de cero, que para montos no negativos es exactamente half-up). Misma entrada
// → misma comisión, siempre.
func Split(gross, commissionRate decimal.Decimal, currency string) (fee, net decimal.Decimal, err error) {
	exp, err := Exponent(currency)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	fee = gross.Mul(commissionRate).Div(decimal.NewFromInt(100)).Round(exp)
	net = gross.Sub(fee)
	return fee, net, nil
}
