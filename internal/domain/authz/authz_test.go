package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

func TestAuthorize_AdminPermiteTodo(t *testing.T) {
	admin := Principal{UserID: "admin-1", Active: true, Roles: []string{entity.RoleAdmin}}
	res := Resource{SupplierID: "sup-1", OwnerUserID: "otro", SupplierStatus: entity.SupplierPending}

	actions := []Action{
		ActionSupplierView, ActionSupplierUpdate, ActionManagerMutate,
		ActionProductCreate, ActionProductPublish, ActionProductDelete,
		ActionSupplierVerify, ActionSupplierSuspend, ActionSupplierDelete,
		ActionOrderList, ActionDashboardView, ActionSettlementView,
	}
	for _, a := range actions {
		d := Authorize(admin, a, res)
		assert.True(t, d.Allowed, "admin debería poder %s", a)
		assert.Empty(t, d.Reason)
	}
}

func TestAuthorize_NoMiembroEsRechazado(t *testing.T) {
	extranjero := Principal{UserID: "user-9", Active: true, Roles: []string{entity.RoleCustomer}}
	res := Resource{SupplierID: "sup-1", OwnerUserID: "owner-1", SupplierStatus: entity.SupplierActive}

	for _, a := range []Action{ActionSupplierView, ActionProductCreate, ActionOrderList, ActionDashboardView, ActionSettlementView} {
		d := Authorize(extranjero, a, res)
		assert.False(t, d.Allowed, "no-miembro no debería poder %s", a)
		assert.Equal(t, ReasonNotMember, d.Reason)
	}
}

func TestAuthorize_OwnerYManagerSonMiembros(t *testing.T) {
	owner := Principal{UserID: "owner-1", Active: true}
	manager := Principal{UserID: "mgr-1", Active: true}

	res := Resource{SupplierID: "sup-1", OwnerUserID: "owner-1", SupplierStatus: entity.SupplierActive}
	assert.True(t, Authorize(owner, ActionSupplierUpdate, res).Allowed)

	// El manager solo cuenta si la membresía fue resuelta por el caller.
	assert.False(t, Authorize(manager, ActionSupplierUpdate, res).Allowed)
	res.Member = true
	assert.True(t, Authorize(manager, ActionSupplierUpdate, res).Allowed)
}

func TestAuthorize_PublicarRequiereProveedorElegible(t *testing.T) {
	owner := Principal{UserID: "owner-1", Active: true}

	cases := []struct {
		status  string
		allowed bool
	}{
		{entity.SupplierPending, false},
		{entity.SupplierSuspended, false},
		{entity.SupplierVerified, true},
		{entity.SupplierActive, true},
	}
	for _, tc := range cases {
		res := Resource{SupplierID: "sup-1", OwnerUserID: "owner-1", SupplierStatus: tc.status}
		d := Authorize(owner, ActionProductPublish, res)
		assert.Equal(t, tc.allowed, d.Allowed, "status %s", tc.status)
		if !tc.allowed {
			assert.Equal(t, ReasonNotEligible, d.Reason)
		}
	}
}

func TestAuthorize_PublicarNoMiembroGanaNotMember(t *testing.T) {
	// Si no es miembro, la razón es membresía aunque el proveedor tampoco sea elegible.
	extranjero := Principal{UserID: "user-9", Active: true}
	res := Resource{SupplierID: "sup-1", OwnerUserID: "owner-1", SupplierStatus: entity.SupplierPending}

	d := Authorize(extranjero, ActionProductPublish, res)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotMember, d.Reason)
}

func TestAuthorize_CambiosDeEstadoSoloAdmin(t *testing.T) {
	// Ni siquiera el owner puede verificar/suspender/borrar su propio proveedor.
	owner := Principal{UserID: "owner-1", Active: true}
	res := Resource{SupplierID: "sup-1", OwnerUserID: "owner-1", SupplierStatus: entity.SupplierActive}

	for _, a := range []Action{ActionSupplierVerify, ActionSupplierSuspend, ActionSupplierActivate, ActionSupplierDelete} {
		d := Authorize(owner, a, res)
		assert.False(t, d.Allowed, "owner no debería poder %s", a)
		assert.Equal(t, ReasonAdminOnly, d.Reason)
	}
}

func TestAuthorize_ManagersSoloLosMutaElOwner(t *testing.T) {
	res := Resource{SupplierID: "sup-1", OwnerUserID: "owner-1", SupplierStatus: entity.SupplierActive, Member: true}

	owner := Principal{UserID: "owner-1", Active: true}
	assert.True(t, Authorize(owner, ActionManagerMutate, res).Allowed)

	manager := Principal{UserID: "mgr-1", Active: true}
	d := Authorize(manager, ActionManagerMutate, res)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonOwnerOnly, d.Reason)
}

func TestAuthorize_CatalogoPublicoParaAnonimos(t *testing.T) {
	d := Authorize(Anonymous(), ActionCatalogRead, Resource{})
	assert.True(t, d.Allowed)
}

func TestAuthorize_AccionDesconocidaSeRechaza(t *testing.T) {
	p := Principal{UserID: "user-1", Active: true}
	d := Authorize(p, Action("nope"), Resource{OwnerUserID: "user-1"})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnauthorized, d.Reason)
}

func TestAuthorize_AnonimoNuncaEsMiembro(t *testing.T) {
	// UserID vacío no matchea un OwnerUserID vacío por accidente.
	res := Resource{SupplierID: "sup-1", OwnerUserID: "", SupplierStatus: entity.SupplierActive}
	d := Authorize(Anonymous(), ActionSupplierView, res)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotMember, d.Reason)
}

func TestPrincipal_HasRole(t *testing.T) {
	p := Principal{UserID: "u1", Roles: []string{entity.RoleCustomer, entity.RoleAdmin}}
	assert.True(t, p.HasRole(entity.RoleCustomer))
	assert.True(t, p.IsAdmin())
	assert.False(t, Principal{}.IsAdmin())
}
