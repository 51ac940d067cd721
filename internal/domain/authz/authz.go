// Package authz implementa el evaluador de autorización del marketplace como
// servicio de dominio puro: sin estado, sin DB, sin contexto ambiente. El
// caller carga el proveedor y resuelve la membresía por request, y el evaluador
// decide Allow/Deny sobre esos valores.
//
// Precedencia de reglas (gana la primera que aplica):
//  1. admin      → Allow para toda acción.
//  2. acciones de cambio de estado / borrado de proveedor → solo admin.
//  3. lectura de catálogo público → Allow para cualquiera (incluso anónimo).
//  4. publicar producto → requiere membresía + proveedor verified/active.
//  5. acción sobre recursos del proveedor → Allow si owner o manager.
//  6. default → Deny.
//
// Deny NO es un error: es un resultado tipado que el transporte mapea a 403.
// La ausencia de token válido es un chequeo anterior (401) que no pasa por aquí.
package authz

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// Principal identidad autenticada derivada de un token validado, con alcance de
// un solo request. Nunca se persiste ni se guarda como estado global.
type Principal struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Active    bool
	Roles     []string
}

// Anonymous devuelve el principal vacío usado en endpoints públicos.
func Anonymous() Principal { return Principal{} }

// HasRole indica si el principal tiene el rol dado.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin indica si el principal tiene el rol admin.
func (p Principal) IsAdmin() bool { return p.HasRole(entity.RoleAdmin) }

// Action acción evaluable sobre un recurso.
type Action string

const (
	// Acciones con alcance de proveedor (requieren membresía).
	ActionSupplierView    Action = "supplier.view"
	ActionSupplierUpdate  Action = "supplier.update"
	ActionManagerMutate   Action = "supplier.managers"
	ActionProductCreate   Action = "product.create"
	ActionProductUpdate   Action = "product.update"
	ActionProductDelete   Action = "product.delete"
	ActionOrderList       Action = "order.list"
	ActionDashboardView   Action = "dashboard.view"
	ActionSettlementView  Action = "settlement.view"

	// Solo admin.
	ActionSupplierVerify   Action = "supplier.verify"
	ActionSupplierSuspend  Action = "supplier.suspend"
	ActionSupplierActivate Action = "supplier.activate"
	ActionSupplierDelete   Action = "supplier.delete"

	// Publicación: membresía + estado elegible del proveedor.
	ActionProductPublish Action = "product.publish"

	// Lectura pública de catálogo.
	ActionCatalogRead Action = "catalog.read"
)

// Resource referencia al recurso objetivo, con la membresía ya resuelta por el
// caller contra el registro de managers. Para acciones de catálogo puede ir vacío.
type Resource struct {
	SupplierID     string
	OwnerUserID    string
	SupplierStatus string
	Member         bool // true si el principal aparece en supplier_managers
}

// Decision resultado tipado de la evaluación.
type Decision struct {
	Allowed bool
	Reason  string // vacío cuando Allowed
}

// Razones de rechazo expuestas al transporte.
const (
	ReasonNotMember    = "no es miembro del proveedor"
	ReasonAdminOnly    = "requiere rol admin"
	ReasonOwnerOnly    = "solo el dueño del proveedor o un admin"
	ReasonNotEligible  = "el proveedor no está habilitado para publicar"
	ReasonUnauthorized = "no autorizado"
)

// Allow decisión positiva.
func Allow() Decision { return Decision{Allowed: true} }

// Deny decisión negativa con razón.
func Deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Authorize evalúa la acción del principal sobre el recurso.
func Authorize(p Principal, action Action, res Resource) Decision {
	if p.IsAdmin() {
		return Allow()
	}

	switch action {
	case ActionSupplierVerify, ActionSupplierSuspend, ActionSupplierActivate, ActionSupplierDelete:
		return Deny(ReasonAdminOnly)

	case ActionCatalogRead:
		return Allow()

	case ActionProductPublish:
		if !isMember(p, res) {
			return Deny(ReasonNotMember)
		}
		if res.SupplierStatus != entity.SupplierVerified && res.SupplierStatus != entity.SupplierActive {
			return Deny(ReasonNotEligible)
		}
		return Allow()

	case ActionManagerMutate:
		// Las filas de managers solo las muta el dueño (o admin, ya cubierto).
		if p.UserID == "" || p.UserID != res.OwnerUserID {
			return Deny(ReasonOwnerOnly)
		}
		return Allow()

	case ActionSupplierView, ActionSupplierUpdate,
		ActionProductCreate, ActionProductUpdate, ActionProductDelete,
		ActionOrderList, ActionDashboardView, ActionSettlementView:
		if !isMember(p, res) {
			return Deny(ReasonNotMember)
		}
		return Allow()
	}

	return Deny(ReasonUnauthorized)
}

// isMember: el owner es miembro implícito; el resto viene resuelto del registro.
func isMember(p Principal, res Resource) bool {
	if p.UserID == "" {
		return false
	}
	return p.UserID == res.OwnerUserID || res.Member
}
