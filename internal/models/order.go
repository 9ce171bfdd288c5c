package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order stores the generated UBL document for one order.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   int64              `bson:"orderId" json:"orderId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	XML       string             `bson:"xml" json:"xml"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// RegisteredOrder records the computed total cost of an order.
type RegisteredOrder struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID int64              `bson:"orderId" json:"orderId"`
	Cost    float64            `bson:"cost" json:"cost"`
}

// Product is upserted from order lines so repeated orders keep a
// single product document per seller item id.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID    string             `bson:"productId" json:"productId"`
	SellerItemID string             `bson:"sellerItemId" json:"sellerItemId"`
	Cost         float64            `bson:"cost" json:"cost"`
	Description  string             `bson:"description" json:"description"`
	Name         string             `bson:"name" json:"name"`
}

// RegisteredOrderProduct links an order to a product it contains.
type RegisteredOrderProduct struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   int64              `bson:"orderId" json:"orderId"`
	ProductID string             `bson:"productId" json:"productId"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
}
