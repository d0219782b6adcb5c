package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a rental booking. Status stays false from submission until
// the gateway confirms settlement; TransitionID correlates the document
// with the gateway-side transaction and is unique per payment attempt.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	TotalPrice   float64            `bson:"totalPrice" json:"totalPrice"`
	Currency     string             `bson:"currency" json:"currency"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	Country      string             `bson:"country" json:"country"`
	City         string             `bson:"city" json:"city"`
	Thana        string             `bson:"thana" json:"thana"`
	PostCode     string             `bson:"postCode" json:"postCode"`
	Number       string             `bson:"number" json:"number"`
	Status       bool               `bson:"status" json:"status"`
	TransitionID string             `bson:"transitionId,omitempty" json:"transitionId,omitempty"`
	Payment      string             `bson:"payment,omitempty" json:"payment,omitempty"` // "complete" once patched
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
