package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/executivemachines/rental-api/internal/models"
)

// CreateBooking inserts the request body verbatim. The payment flow
// (POST /bookings) is the validated path; this one mirrors the store's
// raw insert contract.
func (h *Handler) CreateBooking(c *gin.Context) {
	var booking bson.M
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	collection := h.DB.Collection("booking")
	result, err := collection.InsertOne(context.TODO(), booking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": result.InsertedID})
}

// GetBooking fetches one booking by id.
func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var booking models.Booking
	collection := h.DB.Collection("booking")
	err = collection.FindOne(context.TODO(), bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a booking by id; absent ids still acknowledge
// with deletedCount 0.
func (h *Handler) DeleteBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	collection := h.DB.Collection("booking")
	result, err := collection.DeleteOne(context.TODO(), bson.M{"_id": bookingID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": result.DeletedCount})
}

// MarkBookingPaid sets the payment flag to "complete" unconditionally.
func (h *Handler) MarkBookingPaid(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	collection := h.DB.Collection("booking")
	result, err := collection.UpdateOne(context.TODO(), bson.M{"_id": bookingID}, bson.M{"$set": bson.M{"payment": "complete"}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "matchedCount": result.MatchedCount, "modifiedCount": result.ModifiedCount})
}

// ListUserBookings returns the bookings owned by the email in the
// query string. The token's email must match the requested email so one
// identity cannot page through another's bookings.
func (h *Handler) ListUserBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, make([]models.Booking, 0))
		return
	}

	decodedEmail := c.GetString("email")
	if email != decodedEmail {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized"})
		return
	}

	collection := h.DB.Collection("booking")
	cursor, err := collection.Find(context.TODO(), bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}
	defer cursor.Close(context.TODO())

	var bookings []models.Booking
	if err = cursor.All(context.TODO(), &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode bookings"})
		return
	}
	if bookings == nil {
		bookings = make([]models.Booking, 0)
	}

	c.JSON(http.StatusOK, bookings)
}
