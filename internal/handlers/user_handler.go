package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/executivemachines/rental-api/internal/models"
)

// CreateUser inserts the request body verbatim; identity email is the
// caller's problem, the store does not enforce a schema.
func (h *Handler) CreateUser(c *gin.Context) {
	var user bson.M
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	collection := h.DB.Collection("users")
	result, err := collection.InsertOne(context.TODO(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": result.InsertedID})
}

// ListUsers returns every user document, store-native order.
func (h *Handler) ListUsers(c *gin.Context) {
	collection := h.DB.Collection("users")
	cursor, err := collection.Find(context.TODO(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	defer cursor.Close(context.TODO())

	var users []models.User
	if err = cursor.All(context.TODO(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}

	c.JSON(http.StatusOK, users)
}

// PromoteUser sets role to "admin" unconditionally; this is the only
// mutation users ever receive.
func (h *Handler) PromoteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	collection := h.DB.Collection("users")
	result, err := collection.UpdateOne(context.TODO(), bson.M{"_id": userID}, bson.M{"$set": bson.M{"role": "admin"}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "matchedCount": result.MatchedCount, "modifiedCount": result.ModifiedCount})
}

// DeleteUser removes a user by id. Deleting an absent id is still a
// success with deletedCount 0.
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	collection := h.DB.Collection("users")
	result, err := collection.DeleteOne(context.TODO(), bson.M{"_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": result.DeletedCount})
}

// GetUserRole looks a user up by identity email and reports its role.
func (h *Handler) GetUserRole(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	collection := h.DB.Collection("users")
	err := collection.FindOne(context.TODO(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}
