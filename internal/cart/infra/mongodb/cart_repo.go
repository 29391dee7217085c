package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type CartRepo struct {
	col *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{
		col: db.Collection("carts"),
	}
}

func (r *CartRepo) FindByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find cart lines: %w", err)
	}

	var lines []domain.CartLine
	if err := cur.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("decode cart lines: %w", err)
	}
	return lines, nil
}

func (r *CartRepo) FindByUserAndProduct(ctx context.Context, userID, productID string) (domain.CartLine, error) {
	var line domain.CartLine
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "product_id": productID}).Decode(&line)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.CartLine{}, app.ErrLineNotFound
		}
		return domain.CartLine{}, fmt.Errorf("find cart line: %w", err)
	}
	return line, nil
}

func (r *CartRepo) Insert(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	now := time.Now().UTC()
	line.CreatedAt = now
	line.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, line)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("insert cart line: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.CartLine{}, fmt.Errorf("insert cart line: unexpected id type %T", res.InsertedID)
	}
	line.ID = id
	return line, nil
}

func (r *CartRepo) UpdateQuantity(ctx context.Context, lineID string, quantity int64) error {
	oid, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return fmt.Errorf("update cart line: bad line id %q: %w", lineID, err)
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"quantity":   quantity,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	if res.MatchedCount == 0 {
		return app.ErrLineNotFound
	}
	return nil
}
