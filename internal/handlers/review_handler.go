package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/executivemachines/rental-api/internal/models"
)

// CreateReview inserts the review body verbatim. Reviews are
// append-only; nothing here ever updates or deletes them.
func (h *Handler) CreateReview(c *gin.Context) {
	var review bson.M
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	collection := h.DB.Collection("review")
	result, err := collection.InsertOne(context.TODO(), review)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": result.InsertedID})
}

// ListReviews returns every review, store-native order.
func (h *Handler) ListReviews(c *gin.Context) {
	collection := h.DB.Collection("review")
	cursor, err := collection.Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	defer cursor.Close(context.TODO())

	var reviews []models.Review
	if err = cursor.All(context.TODO(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}
	if reviews == nil {
		reviews = make([]models.Review, 0)
	}

	c.JSON(http.StatusOK, reviews)
}

// ListUserReviews returns one author's reviews. The token email must
// match the path email, same scoping rule as bookings.
func (h *Handler) ListUserReviews(c *gin.Context) {
	email := c.Param("email")

	decodedEmail := c.GetString("email")
	if email != decodedEmail {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized"})
		return
	}

	collection := h.DB.Collection("review")
	cursor, err := collection.Find(context.TODO(), bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	defer cursor.Close(context.TODO())

	var reviews []models.Review
	if err = cursor.All(context.TODO(), &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}
	if reviews == nil {
		reviews = make([]models.Review, 0)
	}

	c.JSON(http.StatusOK, reviews)
}
