// Package money concentra la aritmética de moneda del ledger.
// Todo valor monetario que se guarda o se compara pasa por estas funciones:
// redondeo a 2 decimales (mitad lejos de cero) y comparación con tolerancia de medio centavo.
package money

import "github.com/shopspring/decimal"

// Places decimales de la moneda.
const Places = 2

// Tolerance diferencia máxima (exclusiva) para considerar dos montos iguales.
var Tolerance = decimal.RequireFromString("0.005")

// Round redondea a 2 decimales, mitad lejos de cero (1.005 -> 1.01, -1.005 -> -1.01).
func Round(x decimal.Decimal) decimal.Decimal {
	return x.Round(Places)
}

// FromFloat convierte un float (CSV, JSON numérico, datos heredados) usando su representación
// decimal más corta y redondea. Evita el arrastre binario: 0.1+0.2 -> 0.30.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// FromInt convierte un entero de unidades monetarias.
func FromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Add suma y redondea.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Add(b))
}

// Sub resta y redondea.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b))
}

// Mul multiplica y redondea.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Mul(b))
}

// MulInt multiplica por una cantidad entera (precio x unidades) y redondea.
func MulInt(a decimal.Decimal, qty int) decimal.Decimal {
	return Mul(a, decimal.NewFromInt(int64(qty)))
}

// Sum suma todos los valores redondeando en cada paso.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = Add(total, v)
	}
	return total
}

// EnsureNonNegative devuelve max(0, Round(x)).
func EnsureNonNegative(x decimal.Decimal) decimal.Decimal {
	r := Round(x)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Equal compara con tolerancia de medio centavo: |a-b| < 0.005.
func Equal(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// IsPositive indica si el monto redondeado es > 0.
func IsPositive(x decimal.Decimal) bool {
	return Round(x).IsPositive()
}

// Format devuelve el monto con 2 decimales fijos ("1500.00").
func Format(x decimal.Decimal) string {
	return Round(x).StringFixed(Places)
}
