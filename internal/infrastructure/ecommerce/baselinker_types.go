package ecommerce

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexibleID is an identifier the BaseLinker API emits either as a JSON
// string or as a JSON number, depending on endpoint and account vintage.
type FlexibleID string

// UnmarshalJSON accepts both string and numeric encodings
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// String returns the identifier as a string
func (f FlexibleID) String() string {
	return string(f)
}

// baseLinkerEnvelope is the common part of every BaseLinker response
type baseLinkerEnvelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// IsSuccess reports whether the API accepted the request.
// BaseLinker is inconsistent about casing ("SUCCESS" vs "success").
func (e *baseLinkerEnvelope) IsSuccess() bool {
	return strings.EqualFold(e.Status, "success")
}

// BaseLinkerGetOrdersResponse is the response of the getOrders method
type BaseLinkerGetOrdersResponse struct {
	baseLinkerEnvelope
	Orders []BaseLinkerOrder `json:"orders"`
}

// BaseLinkerOrder is one order in a getOrders response
type BaseLinkerOrder struct {
	OrderID  FlexibleID            `json:"order_id"`
	Products []BaseLinkerOrderItem `json:"products"`
}

// BaseLinkerOrderItem is one product line of a BaseLinker order
type BaseLinkerOrderItem struct {
	OrderProductID FlexibleID `json:"order_product_id"`
	ProductID      FlexibleID `json:"product_id"`
}

// BaseLinkerSetFieldsResponse is the response of setOrderProductFields
type BaseLinkerSetFieldsResponse struct {
	baseLinkerEnvelope
}
