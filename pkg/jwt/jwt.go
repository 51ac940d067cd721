package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Errores del emisor de tokens.
var (
	// ErrEmptySecret el secreto de firma no está configurado (error de configuración, no de input).
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrInvalidUser el usuario es nulo o no tiene email (error de input).
	ErrInvalidUser = errors.New("jwt: usuario inválido")
)

// TokenInput datos del usuario que se embeben en el token.
type TokenInput struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Active    bool
	Roles     []string // admin, supplier, customer (puede estar vacío)
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Los roles van dos veces: como lista ("roles") y unidos por coma ("role") para
// que el cliente web los parsee sin deserializar arrays.
type Claims struct {
	jwt.RegisteredClaims
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Active    bool     `json:"active"`
	Roles     []string `json:"roles"`
	RoleList  string   `json:"role"`
}

// Generate emite un token HS256 firmado con expiración fija de expHours (default del sistema: 24h).
// El jti (uuid) permite rastreo de replay/blacklist aguas arriba.
// Retorna ErrEmptySecret si no hay secreto y ErrInvalidUser si falta el email o el ID.
func Generate(secret, issuer string, in TokenInput, expHours int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if in.UserID == "" || strings.TrimSpace(in.Email) == "" {
		return "", ErrInvalidUser
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   in.UserID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expHours) * time.Hour)),
		},
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Active:    in.Active,
		Roles:     in.Roles,
		RoleList:  strings.Join(in.Roles, ","),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración, y devuelve los claims.
// Retorna error si el token es inválido, expirado o firmado con otro método/secreto.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
