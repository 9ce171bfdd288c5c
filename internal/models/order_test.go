package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The statistics aggregation joins orders to registered_orders on the
// orderId field, and the startup indexes key on orderId and productId;
// the persisted documents must keep exactly those bson keys.
func TestPersistedOrderDocumentKeys(t *testing.T) {
	order := Order{
		OrderID:   123456,
		UserID:    primitive.NewObjectID(),
		XML:       "<Order/>",
		CreatedAt: time.Now(),
	}
	registered := RegisteredOrder{OrderID: 123456, Cost: 6325}
	link := RegisteredOrderProduct{OrderID: 123456, ProductID: "SItemNo011", Quantity: 120}

	for _, tt := range []struct {
		name string
		doc  interface{}
		keys []string
	}{
		{name: "order", doc: order, keys: []string{"orderId", "userId", "xml", "createdAt"}},
		{name: "registered order", doc: registered, keys: []string{"orderId", "cost"}},
		{name: "order product link", doc: link, keys: []string{"orderId", "productId", "quantity"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.doc)
			if err != nil {
				t.Fatalf("bson marshal failed: %v", err)
			}
			var decoded bson.M
			if err := bson.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("bson unmarshal failed: %v", err)
			}
			for _, key := range tt.keys {
				if _, ok := decoded[key]; !ok {
					t.Errorf("missing bson key %q in %s document", key, tt.name)
				}
			}
		})
	}

	raw, err := bson.Marshal(order)
	if err != nil {
		t.Fatalf("bson marshal failed: %v", err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("bson unmarshal failed: %v", err)
	}
	if _, ok := decoded["_id"]; ok {
		t.Error("unset _id should be omitted so Mongo assigns one on insert")
	}
}
