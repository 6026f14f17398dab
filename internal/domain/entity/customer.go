package entity

import "time"

// Customer representa una clienta del negocio.
// El nivel (VIP/Frecuente/Regular) NO se persiste: se deriva del historial de
// ventas completadas al momento de la lectura (ver domain/customer).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Instagram string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
