package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/compras-sa/aprovacao-cotacao/internal/aprovacao"
	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

type QuoteRepository struct {
	coll *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{coll: db.Collection("cotacoes")}
}

func (r *QuoteRepository) Create(ctx context.Context, c *models.Quote) (string, error) {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if c.Status == "" {
		c.Status = models.StatusPendente
	}
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(string) // _id é string (uuid) neste projeto
	return id, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	var c models.Quote
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, aprovacao.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *QuoteRepository) GetAll(ctx context.Context, limit, skip int64) ([]models.Quote, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Quote{}
	for cur.Next(ctx) {
		var c models.Quote
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, cur.Err()
}

// UpdateStatus grava o slug vindo do workflow externo. Este serviço não
// decide status; só espelha para o gate ler.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return aprovacao.ErrNotFound
	}
	return nil
}
