package entity

// Buyer comprador identificado. No se persiste: se deriva de los nombres que aparecen en
// ventas, créditos y pagos. ID es estable para un mismo nombre normalizado; Aliases guarda
// todas las grafías originales encontradas (incluida Name).
type Buyer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Normalized string   `json:"normalized"`
	Aliases    []string `json:"aliases"`
}
