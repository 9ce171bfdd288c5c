package models

import (
	"encoding/json"
	"testing"
)

// Amounts arrive as JSON numbers from some clients and as numeric
// strings from others; both must decode into the same decimal value.
func TestOrderRequestDecodesNumericStrings(t *testing.T) {
	payload := `{
		"monetaryTotal": {
			"lineExtensionAmount": "6225",
			"taxTotal": 100,
			"allowanceCharge": [
				{"chargeIndicator": "true", "allowanceChargeReason": "Transport documents", "amount": 100},
				{"chargeIndicator": "false", "allowanceChargeReason": "Discount", "amount": "100"}
			]
		},
		"orderLines": [
			{"note": "n", "lineItem": {"quantity": 120, "price": "50", "totalTaxAmount": 10,
				"baseQuantity": {"quantity": 1, "unitCode": "LTR"},
				"item": {"itemId": "SItemNo011", "name": "Paint", "description": "Red paint"}}}
		]
	}`

	var req OrderRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got := req.MonetaryTotal.LineExtensionAmount.String(); got != "6225" {
		t.Errorf("lineExtensionAmount = %s, want 6225", got)
	}
	if got := req.MonetaryTotal.TaxTotal.String(); got != "100" {
		t.Errorf("taxTotal = %s, want 100", got)
	}
	if got := req.MonetaryTotal.AllowanceCharge[1].Amount.String(); got != "100" {
		t.Errorf("string amount = %s, want 100", got)
	}
	if got := req.OrderLines[0].LineItem.Price.String(); got != "50" {
		t.Errorf("price = %s, want 50", got)
	}
	if got := req.OrderLines[0].LineItem.Quantity.Mul(req.OrderLines[0].LineItem.Price).String(); got != "6000" {
		t.Errorf("quantity*price = %s, want 6000", got)
	}
}

func TestOrderRequestRejectsNonNumericAmount(t *testing.T) {
	payload := `{"monetaryTotal": {"lineExtensionAmount": "not-a-number"}}`

	var req OrderRequest
	if err := json.Unmarshal([]byte(payload), &req); err == nil {
		t.Fatal("expected unmarshal error for non-numeric amount")
	}
}
