package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one (user, product, quantity) record. At most one line exists
// per (user, product) pair; repeated adds merge into it instead of creating a
// duplicate.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ProductID string             `bson:"product_id"`
	Quantity  int64              `bson:"quantity"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
}

// LineView is a cart line joined with live product data.
type LineView struct {
	LineID    string
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int64
	Subtotal  float64
}

// EnrichedCart is the derived read model of a cart: line views plus a grand
// total, recomputed on every read. StaleLines counts lines whose product no
// longer resolves; they contribute nothing to Lines or GrandTotal.
type EnrichedCart struct {
	Lines      []LineView
	GrandTotal float64
	StaleLines int
}
