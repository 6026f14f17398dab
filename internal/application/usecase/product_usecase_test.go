package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/application/usecase"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

func createReq(ref, name, category string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Ref:            ref,
		Name:           name,
		Category:       category,
		WholesalePrice: dec("12000"),
		RetailPrice:    dec("30000"),
		Stock:          10,
		MinStock:       3,
	}
}

func TestProductCreate(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create(createReq("CAN-001", "Candongas doradas", entity.CategoryCandongas))
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "CAN-001", out.Ref)
	assert.True(t, out.IsActive)
	assert.Equal(t, 10, out.Stock)
}

func TestProductCreate_RefDuplicada(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(createReq("CAN-001", "Candongas doradas", entity.CategoryCandongas))
	require.NoError(t, err)

	_, err = uc.Create(createReq("CAN-001", "Otras candongas", entity.CategoryCandongas))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin ref", createReq("", "Candongas", entity.CategoryCandongas)},
		{"sin nombre", createReq("CAN-001", "", entity.CategoryCandongas)},
		{"categoría inválida", createReq("CAN-001", "Candongas", "ZAPATOS")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	precioNegativo := createReq("CAN-002", "Candongas", entity.CategoryCandongas)
	precioNegativo.RetailPrice = dec("-1")
	_, err := uc.Create(precioNegativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parcial(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create(createReq("CAN-001", "Candongas doradas", entity.CategoryCandongas))
	require.NoError(t, err)

	nuevoNombre := "Candongas doradas grandes"
	nuevoPrecio := dec("35000")
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:        &nuevoNombre,
		RetailPrice: &nuevoPrecio,
	})
	require.NoError(t, err)

	assert.Equal(t, nuevoNombre, out.Name)
	assert.True(t, out.RetailPrice.Equal(nuevoPrecio))
	// Lo no enviado se conserva.
	assert.Equal(t, "CAN-001", out.Ref)
	assert.True(t, out.WholesalePrice.Equal(dec("12000")))
}

func TestProductUpdate_NoExiste(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	nombre := "Nada"
	_, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &nombre})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductDeactivate_SaleDelListado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create(createReq("CAN-001", "Candongas doradas", entity.CategoryCandongas))
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(created.ID))

	list, err := uc.List(repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "un producto desactivado no debe listarse")
}

func TestProductLowStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	bajo := createReq("CAN-001", "Candongas doradas", entity.CategoryCandongas)
	bajo.Stock = 2
	bajo.MinStock = 3
	_, err := uc.Create(bajo)
	require.NoError(t, err)

	_, err = uc.Create(createReq("COL-014", "Collar corazón", entity.CategoryCollares))
	require.NoError(t, err)

	out, err := uc.LowStock()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CAN-001", out[0].Ref)
	assert.Equal(t, 2, out[0].Stock)
}

func TestProductStats(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(createReq("CAN-001", "Candongas doradas", entity.CategoryCandongas))
	require.NoError(t, err)

	stats, err := uc.Stats()
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalUnits)
	assert.True(t, stats.TotalCostValue.Equal(dec("120000")), "10 × 12000 a costo")
	assert.True(t, stats.TotalRetailValue.Equal(dec("300000")), "10 × 30000 a precio de venta")
}
