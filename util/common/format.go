package common

import (
	"fmt"
	"strconv"
)

// RoundPrice rounds a monetary amount to two decimals. Rounding is done on the
// exact binary value, so 2.675 becomes 2.67. Every price goes through it
// before it reaches the database.
func RoundPrice(price float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(price, 'f', 2, 64), 64)
	if err != nil {
		return price
	}
	return rounded
}

// FormatPrice renders a price with two decimals and the euro sign.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f €", RoundPrice(price))
}
