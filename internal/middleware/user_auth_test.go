package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}
	return token
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", UserAuth(testSecret), func(c *gin.Context) {
		userID := c.MustGet("userId").(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
	})
	return r
}

func TestUserAuth(t *testing.T) {
	userID := primitive.NewObjectID()
	valid := signToken(t, jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  "pelle@johnsson.se",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name           string
		header         string
		cookie         string
		expectedStatus int
	}{
		{
			name:           "valid bearer token",
			header:         "Bearer " + valid,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid cookie token",
			cookie:         valid,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			header:         "Token " + valid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"userId": userID.Hex(),
				"exp":    time.Now().Add(-time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing userId claim",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"email": "pelle@johnsson.se",
				"exp":   time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "userId claim is not an object id",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"userId": "not-hex",
				"exp":    time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	r := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "authToken", Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestUserAuthRejectsUnexpectedSigningMethod(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}

	r := authRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
