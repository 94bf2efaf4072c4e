package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/compras-sa/aprovacao-cotacao/internal/aprovacao"
	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

type ApprovalRepository struct {
	coll *mongo.Collection
}

func NewApprovalRepository(db *mongo.Database) *ApprovalRepository {
	return &ApprovalRepository{coll: db.Collection("aprovacoes")}
}

// Índice único (cotacao_id, nivel): no máximo UMA linha por nível por
// cotação, garantido também no storage.
func (r *ApprovalRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "cotacao_id", Value: 1}, {Key: "nivel", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_cotacao_nivel"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	if ce, ok := err.(mongo.CommandError); ok && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropOne(ctx, "uniq_cotacao_nivel"); dropErr != nil {
			return fmt.Errorf("drop index uniq_cotacao_nivel: %w", dropErr)
		}
		_, createErr := r.coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

func (r *ApprovalRepository) ListByQuote(ctx context.Context, cotacaoID string) ([]models.Approval, error) {
	opts := options.Find().SetSort(bson.D{{Key: "tier", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"cotacao_id": cotacaoID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Approval{}
	for cur.Next(ctx) {
		var a models.Approval
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, cur.Err()
}

// ReplaceForQuote apaga as linhas atuais da cotação e insere o lote novo
// numa transação: qualquer falha deixa o conjunto anterior intacto.
func (r *ApprovalRepository) ReplaceForQuote(ctx context.Context, cotacaoID string, linhas []models.Approval) error {
	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	docs := make([]interface{}, 0, len(linhas))
	for i := range linhas {
		docs = append(docs, linhas[i])
	}

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.DeleteMany(sc, bson.M{"cotacao_id": cotacaoID}); err != nil {
			return nil, err
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// ApproveOne é o compare-and-set do registro de aprovação: só transita
// se a linha ainda estiver com aprovada=false. Quem perde a corrida
// recebe ErrAlreadyApproved; linha inexistente, ErrNotFound.
func (r *ApprovalRepository) ApproveOne(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID, nome, observacao string, em time.Time) (*models.Approval, error) {
	filter := bson.M{"cotacao_id": cotacaoID, "nivel": nivel, "aprovada": false}
	update := bson.M{"$set": bson.M{
		"aprovada":          true,
		"aprovada_por":      usuarioID,
		"aprovada_por_nome": nome,
		"aprovada_em":       em,
		"observacao":        observacao,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Approval
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&a)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Sem match: ou a linha não existe, ou alguém aprovou antes.
	count, cntErr := r.coll.CountDocuments(ctx, bson.M{"cotacao_id": cotacaoID, "nivel": nivel})
	if cntErr != nil {
		return nil, cntErr
	}
	if count > 0 {
		return nil, aprovacao.ErrAlreadyApproved
	}
	return nil, aprovacao.ErrNotFound
}
