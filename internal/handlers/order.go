package handlers

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/ubl"
)

// orderIDBound caps generated order identifiers at six digits.
const orderIDBound = 1_000_000

type bulkOrderRequest struct {
	Orders []models.OrderRequest `json:"orders" binding:"required,min=1,dive"`
}

// CreateOrderForm validates an order payload, generates the UBL
// document and persists it together with its registered cost and
// product records.
func CreateOrderForm(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /v1/order/create/form"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req models.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		orderID := newOrderID()
		if err := insertOrder(ctx, db, orderID, userID, req); err != nil {
			log.Println("[ORDER] [ERROR] create failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to create order")
			return
		}

		log.Println("[ORDER] [INFO] order created:", orderID)
		c.JSON(http.StatusOK, gin.H{"orderId": orderID})
	}
}

// CreateOrderBulk creates every order in the submitted list, in input
// order, and returns the generated ids.
func CreateOrderBulk(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /v1/order/create/bulk"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req bulkOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		orderIDs := make([]int64, 0, len(req.Orders))
		for _, order := range req.Orders {
			orderID := newOrderID()
			if err := insertOrder(ctx, db, orderID, userID, order); err != nil {
				log.Println("[ORDER] [ERROR] bulk create failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "failed to create order")
				return
			}
			orderIDs = append(orderIDs, orderID)
		}

		log.Println("[ORDER] [INFO] bulk created", len(orderIDs), "orders")
		c.JSON(http.StatusOK, gin.H{"orderIds": orderIDs})
	}
}

// UpdateOrder replaces a stored order document under its existing id.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /v1/order/:orderId"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId given"})
			return
		}

		var req models.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		valid, err := isOrderIDValid(ctx, db, orderID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId given"})
			return
		}

		if _, err := db.Collection("orders").DeleteOne(ctx, bson.M{"orderId": orderID}); err != nil {
			log.Println("[ORDER] [ERROR] update delete failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order")
			return
		}

		if err := insertOrder(ctx, db, orderID, userID, req); err != nil {
			log.Println("[ORDER] [ERROR] update insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to update order")
			return
		}

		log.Println("[ORDER] [INFO] order updated:", orderID)
		c.JSON(http.StatusOK, gin.H{"orderId": orderID})
	}
}

// DeleteOrder removes a stored order document by its numeric id.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId given"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"orderId": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		log.Println("[ORDER] [INFO] order deleted:", orderID)
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

// ListReceivedOrders returns the caller's stored UBL documents.
func ListReceivedOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID})
		if err != nil {
			log.Println("[ORDER] [ERROR] list received failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			log.Println("[ORDER] [ERROR] decode received orders failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		documents := make([]string, 0, len(orders))
		for _, order := range orders {
			documents = append(documents, order.XML)
		}

		c.JSON(http.StatusOK, gin.H{"ublOrderDocuments": documents})
	}
}

// insertOrder generates the UBL document for req and writes the order,
// its registered cost, the products it references and the order to
// product links.
func insertOrder(ctx context.Context, db *mongo.Database, orderID int64, userID primitive.ObjectID, req models.OrderRequest) error {
	result, err := ubl.Generate(req, orderID)
	if err != nil {
		return fmt.Errorf("generate ubl document: %w", err)
	}

	_, err = db.Collection("orders").InsertOne(ctx, models.Order{
		OrderID:   orderID,
		UserID:    userID,
		XML:       result.XML,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	_, err = db.Collection("registered_orders").InsertOne(ctx, models.RegisteredOrder{
		OrderID: orderID,
		Cost:    result.TotalCost.InexactFloat64(),
	})
	if err != nil {
		return fmt.Errorf("insert registered order: %w", err)
	}

	for _, line := range req.OrderLines {
		productID := line.LineItem.Item.ItemID

		_, err = db.Collection("products").UpdateOne(ctx,
			bson.M{"productId": productID},
			bson.M{"$set": models.Product{
				ProductID:    productID,
				SellerItemID: req.Seller.SellerID,
				Cost:         line.LineItem.Price.InexactFloat64(),
				Description:  line.LineItem.Item.Description,
				Name:         line.LineItem.Item.Name,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", productID, err)
		}

		_, err = db.Collection("registered_order_products").InsertOne(ctx, models.RegisteredOrderProduct{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  line.LineItem.Quantity.InexactFloat64(),
		})
		if err != nil {
			return fmt.Errorf("insert order product link %s: %w", productID, err)
		}
	}

	return nil
}

func isOrderIDValid(ctx context.Context, db *mongo.Database, orderID int64) (bool, error) {
	count, err := db.Collection("orders").CountDocuments(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func userIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	userIDValue, ok := c.Get("userId")
	if !ok {
		log.Println("[ORDER] [ERROR] userId missing in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	userID, ok := userIDValue.(primitive.ObjectID)
	if !ok {
		log.Println("[ORDER] [ERROR] userId has unexpected type")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func newOrderID() int64 {
	return rand.Int64N(orderIDBound)
}
