package entity

// Record registro persistible por el gateway (tienda remota + caché local).
// Normalize re-redondea los montos al leer: los valores numéricos que vienen de la tienda
// o de la caché no se asumen redondeados.
type Record interface {
	GetID() string
	Normalize()
}

var (
	_ Record = (*Product)(nil)
	_ Record = (*Sale)(nil)
	_ Record = (*StandaloneCredit)(nil)
	_ Record = (*Payment)(nil)
)
