package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Stock       Stock              `bson:"stock"`
	CreatedAt   time.Time          `bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty"`
}

// ProductUpdate carries the fields of a catalog edit. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int64
}
