// seed puebla la base de datos con datos de arranque para desarrollo:
// una cuenta demo, el catálogo inicial de referencias y una clienta.
//
// Uso: go run ./cmd/seed
// Idempotente: si el email demo ya existe no inserta nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/infrastructure/postgres"
	"github.com/minegocio/avemaria-api/pkg/config"
)

const (
	demoEmail    = "demo@minegocio.co"
	demoPassword = "demo12345"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
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
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)

	if existing, err := userRepo.GetByEmail(demoEmail); err == nil && existing != nil {
		fmt.Println("la cuenta demo ya existe, nada que sembrar")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        demoEmail,
		PasswordHash: string(hash),
		Name:         "Jhovana",
		BusinessName: "Mi Negocio AVEMARÍA",
	}
	if err := userRepo.Create(user); err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario demo: %v\n", err)
		os.Exit(1)
	}

	products := []*entity.Product{
		newProduct("CAN-001", "Candongas doradas medianas", entity.CategoryCandongas, "12000", "30000", 10, 3),
		newProduct("CAN-002", "Candongas plateadas pequeñas", entity.CategoryCandongas, "10000", "25000", 8, 3),
		newProduct("TOP-005", "Topos perla clásicos", entity.CategoryTopos, "6000", "18000", 15, 5),
		newProduct("COL-014", "Collar cadena con dije de corazón", entity.CategoryCollares, "20000", "45000", 6, 2),
		newProduct("SET-003", "Set candongas y collar luna", entity.CategorySets, "28000", "65000", 4, 2),
		newProduct("PUL-008", "Pulsera de mostacillas colores", entity.CategoryPulseras, "5000", "15000", 12, 4),
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", p.Ref, err)
			os.Exit(1)
		}
	}

	customer := &entity.Customer{
		ID:        uuid.NewString(),
		Name:      "María Fernanda",
		Phone:     "+57 300 123 4567",
		Instagram: "@mafe.accesorios",
		Notes:     "Prefiere entregas los sábados",
	}
	if err := customerRepo.Create(customer); err != nil {
		fmt.Fprintf(os.Stderr, "crear clienta: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("listo: usuario %s (contraseña %s), %d productos y 1 clienta\n",
		demoEmail, demoPassword, len(products))
}

func newProduct(ref, name, category, wholesale, retail string, stock, minStock int) *entity.Product {
	return &entity.Product{
		ID:             uuid.NewString(),
		Ref:            ref,
		Name:           name,
		Category:       category,
		WholesalePrice: decimal.RequireFromString(wholesale),
		RetailPrice:    decimal.RequireFromString(retail),
		Stock:          stock,
		MinStock:       minStock,
		IsActive:       true,
	}
}
