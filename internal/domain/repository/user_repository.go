package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// AddRole agrega un rol al usuario si no lo tiene (idempotente).
	AddRole(userID, role string) error
	Exists(id string) (bool, error)
}
