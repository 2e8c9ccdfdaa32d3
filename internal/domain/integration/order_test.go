package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderLines_Append(t *testing.T) {
	t.Run("preserves source order", func(t *testing.T) {
		var lines OrderLines
		lines = lines.Append(OrderLine{OrderProductID: "101", ProductID: "P1"})
		lines = lines.Append(OrderLine{OrderProductID: "102", ProductID: "P2"})
		lines = lines.Append(OrderLine{OrderProductID: "103", ProductID: ""})

		assert.Equal(t, OrderLines{
			{OrderProductID: "101", ProductID: "P1"},
			{OrderProductID: "102", ProductID: "P2"},
			{OrderProductID: "103", ProductID: ""},
		}, lines)
	})

	t.Run("duplicate line ID is last write wins", func(t *testing.T) {
		var lines OrderLines
		lines = lines.Append(OrderLine{OrderProductID: "101", ProductID: "P1"})
		lines = lines.Append(OrderLine{OrderProductID: "102", ProductID: "P2"})
		lines = lines.Append(OrderLine{OrderProductID: "101", ProductID: "P9"})

		// The later product wins but the line keeps its original position.
		assert.Equal(t, OrderLines{
			{OrderProductID: "101", ProductID: "P9"},
			{OrderProductID: "102", ProductID: "P2"},
		}, lines)
	})
}
