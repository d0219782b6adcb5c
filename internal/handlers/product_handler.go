package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/executivemachines/rental-api/internal/models"
)

// ListProducts returns the whole catalog. The catalog is managed
// externally; this service never writes to it.
func (h *Handler) ListProducts(c *gin.Context) {
	collection := h.DB.Collection("products")
	cursor, err := collection.Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	defer cursor.Close(context.TODO())

	var products []models.Product
	if err = cursor.All(context.TODO(), &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}
	if products == nil {
		products = make([]models.Product, 0)
	}

	c.JSON(http.StatusOK, products)
}

// GetReservation fetches one product by id for the reservation page.
func (h *Handler) GetReservation(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var product models.Product
	collection := h.DB.Collection("products")
	err = collection.FindOne(context.TODO(), bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
