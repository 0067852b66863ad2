package orderRepo

import (
	"context"
	"errors"
	"time"

	"masarra/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new order receipt and returns its ID.
func (r *mongoOrderRepo) Create(ctx context.Context, receipt models.OrderReceipt) (string, error) {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, receipt)
	if err != nil {
		return "", err
	}
	return receipt.ID, nil
}

// GetByID returns an order receipt by its ID.
func (r *mongoOrderRepo) GetByID(ctx context.Context, id string) (*models.OrderReceipt, error) {
	var receipt models.OrderReceipt
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetByUserID fetches all receipts for a user, newest first.
func (r *mongoOrderRepo) GetByUserID(ctx context.Context, userID string) ([]models.OrderReceipt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []models.OrderReceipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// DeleteByID removes an order receipt by ID.
func (r *mongoOrderRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("order receipt not found")
	}
	return nil
}
