package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is read-only from this service; the catalog is managed
// externally, so there are no create/update/delete routes for it.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}
