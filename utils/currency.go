package utils

import "fmt"

// FormatAmount renders a monetary value the way it appears to customers,
// e.g. 1250.5 -> "₹1250.50".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
