package catalog

import "math/big"

// FinalUnitPrice applies a percentage discount to a price and rounds
// the result half-up at the cent boundary. The arithmetic runs on
// big.Rat so the rounding decision is exact.
func FinalUnitPrice(precio float64, descuento int) float64 {
	price := new(big.Rat).SetFloat64(precio)
	if descuento > 0 {
		factor := big.NewRat(int64(100-descuento), 100)
		price.Mul(price, factor)
	}

	// cents = price * 100, rounded half-up: floor(cents + 1/2)
	cents := new(big.Rat).Mul(price, big.NewRat(100, 1))
	cents.Add(cents, big.NewRat(1, 2))
	rounded := new(big.Int).Div(cents.Num(), cents.Denom())

	result := new(big.Rat).SetFrac(rounded, big.NewInt(100))
	f, _ := result.Float64()
	return f
}
