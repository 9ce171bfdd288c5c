package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertedObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	id, ok := insertedObjectID(&mongo.InsertOneResult{InsertedID: want})
	if !ok {
		t.Fatal("expected ok for an ObjectID inserted id")
	}
	if id != want {
		t.Fatalf("got %s, want %s", id.Hex(), want.Hex())
	}

	if _, ok := insertedObjectID(&mongo.InsertOneResult{InsertedID: "not-an-object-id"}); ok {
		t.Fatal("expected !ok for a non-ObjectID inserted id")
	}
}

func TestGetUserStatisticsRejectsBadContextValue(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		setup func(c *gin.Context)
	}{
		{"missing userId", func(c *gin.Context) {}},
		{"wrong userId type", func(c *gin.Context) { c.Set("userId", "not-an-object-id") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/v1/user/statistics", nil)
			tt.setup(c)

			GetUserStatistics(nil)(c)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}
