package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	orderIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().
			SetName("orderId_unique").
			SetUnique(true),
	}
	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}

	log.Println("EnsureOrderIndexes: creating orderId_unique and userId_index indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{orderIDIndex, userIDIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	productIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().
			SetName("productId_unique").
			SetUnique(true),
	}

	log.Println("EnsureProductIndexes: creating productId_unique index")
	_, err := indexes.CreateOne(ctx, productIDIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: productId index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: productId_unique index created")
	return nil
}
