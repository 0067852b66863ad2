package orderRepo

import (
	"context"

	"masarra/database"
	"masarra/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type OrderReceiptRepository interface {
	Create(ctx context.Context, receipt models.OrderReceipt) (string, error)
	GetByID(ctx context.Context, id string) (*models.OrderReceipt, error)
	GetByUserID(ctx context.Context, userID string) ([]models.OrderReceipt, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo returns a new OrderReceiptRepository instance using MongoDB.
func NewMongoOrderRepo() OrderReceiptRepository {
	db := database.MongoClient.Database("masarra")
	return &mongoOrderRepo{
		coll: db.Collection("orders"),
	}
}
