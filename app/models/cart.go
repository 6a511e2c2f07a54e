package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartEntry is one item in a user's cart, keyed by the owner's email.
// Name, image and price are snapshots copied from the menu item at insert
// time; the email may reference a user that has not finished signing in.
type CartEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email  string             `bson:"email"  json:"email"`
	MenuID string             `bson:"menuId" json:"menuId"`
	Name   string             `bson:"name"   json:"name"`
	Image  string             `bson:"image"  json:"image"`
	Price  float64            `bson:"price"  json:"price"`
}
