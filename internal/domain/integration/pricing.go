package integration

import "github.com/shopspring/decimal"

// MarkupPrice converts a wholesale price to a gross sale price by applying
// the configured markup multiplier and rounding to two decimal places.
//
// Rounding is decimal.Round's round-half-away-from-zero: 2.675 rounds to
// 2.68, not 2.67. Tests pin this behavior since it decides the exact cents
// of every synced price.
func MarkupPrice(wholesale, multiplier decimal.Decimal) decimal.Decimal {
	return wholesale.Mul(multiplier).Round(2)
}
