package usecase

import "context"

// Prefijos de claves del caché de catálogo.
const (
	cacheKeyProducts   = "catalog:products"
	cacheKeyCategories = "catalog:categories"
)

// CatalogCache puerto del caché de lecturas públicas de catálogo.
// La implementación concreta usa Redis; un valor nil deshabilita el caché y
// los casos de uso siguen funcionando contra la DB.
type CatalogCache interface {
	// GetJSON deserializa la entrada en dest; devuelve false si no existe.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	// SetJSON serializa y guarda con el TTL configurado.
	SetJSON(ctx context.Context, key string, v interface{}) error
	// InvalidatePrefix borra todas las claves con el prefijo dado.
	InvalidatePrefix(ctx context.Context, prefix string) error
}
