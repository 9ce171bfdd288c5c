package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/models"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	NameFirst string `json:"nameFirst" binding:"required"`
	NameLast  string `json:"nameLast" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		password := strings.TrimSpace(req.Password)
		if email == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		now := time.Now()
		user := models.User{
			Email:        email,
			PasswordHash: string(hash),
			NameFirst:    strings.TrimSpace(req.NameFirst),
			NameLast:     strings.TrimSpace(req.NameLast),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		id, ok := insertedObjectID(res)
		if !ok {
			log.Println("[AUTH] [ERROR] register returned unexpected inserted id type")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		token, err := issueUserToken(id, email, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		setAuthCookie(c, token, accessTTL)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func Login(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] login user not found:", email)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			log.Println("[AUTH] [ERROR] login user lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		token, err := issueUserToken(user.ID, user.Email, jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		setAuthCookie(c, token, accessTTL)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func GetUserDetails(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("userId")
		if !ok {
			log.Println("[USER] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[USER] [ERROR] get details failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":        user.ID.Hex(),
			"email":     user.Email,
			"nameFirst": user.NameFirst,
			"nameLast":  user.NameLast,
			"createdAt": user.CreatedAt,
		})
	}
}

// GetUserStatistics aggregates the caller's registered orders into an
// order count and total spend.
func GetUserStatistics(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[USER] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := userIDValue.(primitive.ObjectID)
		if !ok {
			log.Println("[USER] [ERROR] userId has unexpected type")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"userId": userID}}},
			{{Key: "$lookup", Value: bson.M{
				"from":         "registered_orders",
				"localField":   "orderId",
				"foreignField": "orderId",
				"as":           "registered",
			}}},
			{{Key: "$unwind", Value: "$registered"}},
			{{Key: "$group", Value: bson.M{
				"_id":         nil,
				"totalOrders": bson.M{"$sum": 1},
				"totalSpend":  bson.M{"$sum": "$registered.cost"},
			}}},
		}

		cursor, err := db.Collection("orders").Aggregate(ctx, pipeline)
		if err != nil {
			log.Println("[USER] [ERROR] statistics aggregation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var results []struct {
			TotalOrders int64   `bson:"totalOrders"`
			TotalSpend  float64 `bson:"totalSpend"`
		}
		if err := cursor.All(ctx, &results); err != nil {
			log.Println("[USER] [ERROR] statistics decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if len(results) == 0 {
			c.JSON(http.StatusOK, gin.H{"totalOrders": 0, "totalSpend": 0})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalOrders": results[0].TotalOrders,
			"totalSpend":  results[0].TotalSpend,
		})
	}
}

func insertedObjectID(res *mongo.InsertOneResult) (primitive.ObjectID, bool) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	return id, ok
}

func issueUserToken(userID primitive.ObjectID, email, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  email,
		"exp":    time.Now().Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func setAuthCookie(c *gin.Context, token string, accessTTL time.Duration) {
	c.SetCookie("authToken", token, int(accessTTL.Seconds()), "/", "", true, true)
}
