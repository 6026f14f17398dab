package customer

import "github.com/shopspring/decimal"

// Niveles de clienta derivados del historial de compras completadas.
const (
	LevelVIP       = "VIP"
	LevelFrecuente = "Frecuente"
	LevelRegular   = "Regular"
)

// Umbrales en pesos colombianos.
var (
	vipSpentThreshold      = decimal.NewFromInt(2_000_000)
	frequentSpentThreshold = decimal.NewFromInt(800_000)
)

const frequentPurchasesThreshold = 8

// Level calcula el nivel de una clienta (servicio de dominio).
// VIP: gasto acumulado >= 2.000.000; Frecuente: gasto >= 800.000 u 8+ compras.
// Se deriva siempre en lectura; nunca se almacena.
func Level(totalSpent decimal.Decimal, totalPurchases int) string {
	if totalSpent.GreaterThanOrEqual(vipSpentThreshold) {
		return LevelVIP
	}
	if totalSpent.GreaterThanOrEqual(frequentSpentThreshold) || totalPurchases >= frequentPurchasesThreshold {
		return LevelFrecuente
	}
	return LevelRegular
}
