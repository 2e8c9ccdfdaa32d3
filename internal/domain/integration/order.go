package integration

import "github.com/shopspring/decimal"

// OrderLine is one line item of a marketplace order.
type OrderLine struct {
	// OrderProductID is the line item ID, unique within the order
	OrderProductID string
	// ProductID is the linked retail product ID; empty means no linked product
	ProductID string
}

// OrderLines holds the line items of one order in the order the platform
// listed them.
type OrderLines []OrderLine

// Append adds a line while preserving the platform's ordering semantics:
// a line whose OrderProductID was already seen overwrites the earlier
// product reference in place (last write wins) and keeps the position of
// the first occurrence.
func (l OrderLines) Append(line OrderLine) OrderLines {
	for i := range l {
		if l[i].OrderProductID == line.OrderProductID {
			l[i].ProductID = line.ProductID
			return l
		}
	}
	return append(l, line)
}

// LinePrice is a computed gross price for one order line.
type LinePrice struct {
	// OrderProductID is the line item ID the price belongs to
	OrderProductID string
	// Price is the gross price after markup, rounded to two decimals
	Price decimal.Decimal
}
