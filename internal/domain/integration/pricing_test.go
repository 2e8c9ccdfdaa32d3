package integration

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMarkupPrice(t *testing.T) {
	tests := []struct {
		name       string
		wholesale  string
		multiplier string
		want       string
	}{
		{"identity", "10.00", "1.0", "10"},
		{"simple markup", "10.00", "1.3", "13"},
		{"doubling", "5.50", "2.0", "11"},
		{"zero wholesale", "0", "1.3", "0"},
		{"rounds to two decimals", "9.99", "1.23", "12.29"},
		{"half rounds away from zero", "2.675", "1", "2.68"},
		{"another half case", "2.665", "1", "2.67"},
		{"fractional multiplier", "33.33", "1.15", "38.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkupPrice(decimal.RequireFromString(tt.wholesale), decimal.RequireFromString(tt.multiplier))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"MarkupPrice(%s, %s) = %s, want %s", tt.wholesale, tt.multiplier, got, tt.want)
		})
	}
}
