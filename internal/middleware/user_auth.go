package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAuth validates user JWT tokens and injects the userId into the
// context. The token is taken from the Authorization bearer header or,
// failing that, the authToken cookie set at login.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := tokenFromRequest(c)
		if err != nil {
			log.Println("[AUTH] [ERROR]", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			log.Println("[AUTH] [ERROR] token claims invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userIDValue, ok := claims["userId"].(string)
		if !ok || strings.TrimSpace(userIDValue) == "" {
			log.Println("[AUTH] [ERROR] userId claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDValue)
		if err != nil {
			log.Println("[AUTH] [ERROR] invalid userId claim")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, error) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw != "" {
		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", fmt.Errorf("invalid authorization header")
		}
		return parts[1], nil
	}

	if cookie, err := c.Cookie("authToken"); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie), nil
	}

	return "", fmt.Errorf("missing token")
}
