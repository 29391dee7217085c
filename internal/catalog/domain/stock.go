package domain

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Stock is the count of units available for purchase.
//
// Catalog documents carry the stock attribute in two shapes: a plain number,
// or an embedded document {quantity: n}. Decoding normalizes both to a
// non-negative count; any other shape decodes to zero, so a malformed record
// can never admit a purchase it cannot cover.
type Stock struct {
	count int64
}

func NewStock(n int64) Stock {
	if n < 0 {
		n = 0
	}
	return Stock{count: n}
}

func (s Stock) Count() int64 { return s.count }

func (s Stock) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(s.count)
}

func (s *Stock) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	if n, ok := rv.AsInt64OK(); ok {
		*s = NewStock(n)
		return nil
	}

	if t == bsontype.EmbeddedDocument {
		if q, ok := rv.Document().Lookup("quantity").AsInt64OK(); ok {
			*s = NewStock(q)
			return nil
		}
	}

	*s = Stock{}
	return nil
}
