package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
)

func TestNewOrderIDStaysWithinBound(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := newOrderID()
		if id < 0 || id >= orderIDBound {
			t.Fatalf("order id %d out of range [0, %d)", id, orderIDBound)
		}
	}
}

func TestOrderRequestBindingRejectsMissingSections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Missing everything but the order header.
	body, _ := json.Marshal(gin.H{
		"order": gin.H{"documentCurrencyCode": "SEK"},
	})

	req := httptest.NewRequest("POST", "/v1/order/create/form", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var payload models.OrderRequest
	err := c.ShouldBindJSON(&payload)
	if err == nil {
		t.Fatal("expected binding error for missing required sections")
	}

	recorder := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(recorder)
	c.Request = req
	respondValidationError(c, err)

	if recorder.Code != 400 {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}

	var response struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if response.Error != "validation failed" {
		t.Fatalf("error = %q, want validation failed", response.Error)
	}
	if len(response.Details) == 0 {
		t.Fatal("expected per-field details in validation response")
	}
}

func TestOrderRequestBindingAcceptsCompletePayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := []byte(`{
		"order": {"documentCurrencyCode": "SEK", "note": "n", "contractId": "34322"},
		"buyer": {
			"buyerId": "7300072311115", "name": "Johnssons byggvaror",
			"postalAddress": {"streetName": "Rådhusgatan", "cityName": "Stockholm", "countryCode": "SE"}
		},
		"seller": {
			"sellerId": "7304231321341", "name": "Moderna Produkter AB",
			"postalAddress": {"streetName": "Kungsgatan", "cityName": "Gothenburg", "countryCode": "SE"}
		},
		"delivery": {
			"deliveryAddress": {"streetName": "Rådhusgatan", "cityName": "Stockholm", "countryCode": "SE"},
			"requestedDeliveryPeriod": {"startDate": "2026-09-15", "endDate": "2026-09-25"},
			"deliveryParty": {"name": "Swedish Trucking"}
		},
		"monetaryTotal": {"lineExtensionAmount": "6225", "taxTotal": 100},
		"orderLines": [
			{"lineItem": {"quantity": 120, "price": 50,
				"baseQuantity": {"quantity": 1, "unitCode": "LTR"},
				"item": {"itemId": "SItemNo011", "name": "Paint"}}}
		]
	}`)

	req := httptest.NewRequest("POST", "/v1/order/create/form", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	var payload models.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		t.Fatalf("binding failed: %v", err)
	}

	if payload.Buyer.BuyerID != "7300072311115" {
		t.Errorf("buyerId = %s", payload.Buyer.BuyerID)
	}
	if len(payload.OrderLines) != 1 {
		t.Fatalf("orderLines length = %d, want 1", len(payload.OrderLines))
	}
	if got := payload.MonetaryTotal.LineExtensionAmount.String(); got != "6225" {
		t.Errorf("lineExtensionAmount = %s, want 6225", got)
	}
}
