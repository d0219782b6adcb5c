package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review is append-only: created on submission, never mutated or
// deleted by this service.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email   string             `bson:"email" json:"email"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Rating  float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
}
