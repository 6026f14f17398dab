package customer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/minegocio/avemaria-api/internal/domain/customer"
)

// Gasto >= 2.000.000 → VIP sin importar el número de compras.
func TestLevel_VIPPorGastoAcumulado(t *testing.T) {
	assert.Equal(t, customer.LevelVIP, customer.Level(decimal.NewFromInt(2_000_000), 1))
	assert.Equal(t, customer.LevelVIP, customer.Level(decimal.NewFromInt(3_500_000), 0))
}

// Gasto >= 800.000 → Frecuente aunque tenga pocas compras.
func TestLevel_FrecuentePorGasto(t *testing.T) {
	assert.Equal(t, customer.LevelFrecuente, customer.Level(decimal.NewFromInt(800_000), 1))
	assert.Equal(t, customer.LevelFrecuente, customer.Level(decimal.NewFromInt(1_999_999), 2))
}

// 8 o más compras completadas → Frecuente aunque el gasto sea bajo.
func TestLevel_FrecuentePorNumeroDeCompras(t *testing.T) {
	assert.Equal(t, customer.LevelFrecuente, customer.Level(decimal.NewFromInt(100_000), 8))
	assert.Equal(t, customer.LevelFrecuente, customer.Level(decimal.Zero, 12))
}

// Por debajo de ambos umbrales → Regular.
func TestLevel_Regular(t *testing.T) {
	assert.Equal(t, customer.LevelRegular, customer.Level(decimal.NewFromInt(799_999), 7))
	assert.Equal(t, customer.LevelRegular, customer.Level(decimal.Zero, 0))
}
