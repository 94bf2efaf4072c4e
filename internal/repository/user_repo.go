package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/compras-sa/aprovacao-cotacao/internal/aprovacao"
	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("usuarios")}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return "", mapWriteError(err)
	}
	id, _ := res.InsertedID.(string)
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, aprovacao.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
