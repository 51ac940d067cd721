// seed crea el usuario admin inicial y las categorías raíz del catálogo.
// Idempotente: si el admin o una categoría ya existen, los salta.
//
// Uso: go run ./cmd/seed
// Requiere las mismas variables de entorno de DB que el servidor, más
// SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/postgres"
	"github.com/jhoicas/marketplace-api/pkg/config"
)

var rootCategories = []string{
	"Electrónica",
	"Hogar",
	"Moda",
	"Alimentos",
	"Deportes",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son requeridos")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	existing, err := userRepo.FindByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buscar admin: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Printf("admin %s ya existe, saltando\n", email)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
			os.Exit(1)
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			FirstName:    "Admin",
			LastName:     "Plataforma",
			Roles:        []string{entity.RoleAdmin},
			Status:       entity.UserActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fmt.Fprintf(os.Stderr, "crear admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("admin %s creado\n", email)
	}

	for _, name := range rootCategories {
		existing, err := categoryRepo.GetByName(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "buscar categoría %s: %v\n", name, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("categoría %s ya existe, saltando\n", name)
			continue
		}
		now := time.Now()
		cat := &entity.Category{
			ID:        uuid.New().String(),
			Name:      name,
			Status:    entity.CategoryActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := categoryRepo.Create(cat); err != nil {
			fmt.Fprintf(os.Stderr, "crear categoría %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("categoría %s creada\n", name)
	}
}
