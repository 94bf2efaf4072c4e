package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

// MembershipRepository é o colaborador de vínculo usuário/grupo. O fluxo
// de aprovação só CONSULTA (GroupsOf); o Create existe para o seed.
type MembershipRepository struct {
	coll *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) *MembershipRepository {
	return &MembershipRepository{coll: db.Collection("grupos_usuarios")}
}

func (r *MembershipRepository) Create(ctx context.Context, m *models.Membership) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, m)
	return mapWriteError(err)
}

// GroupsOf lista os nomes de grupo do usuário. Com cnpj informado,
// valem os vínculos daquela empresa e os globais (sem cnpj); sem cnpj,
// todos.
func (r *MembershipRepository) GroupsOf(ctx context.Context, usuarioID, cnpj string) ([]string, error) {
	filter := bson.M{"usuario_id": usuarioID}
	if cnpj != "" {
		filter["$or"] = []bson.M{
			{"cnpj": cnpj},
			{"cnpj": ""},
			{"cnpj": bson.M{"$exists": false}},
		}
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	grupos := []string{}
	visto := map[string]bool{}
	for cur.Next(ctx) {
		var m models.Membership
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		if !visto[m.Grupo] {
			visto[m.Grupo] = true
			grupos = append(grupos, m.Grupo)
		}
	}
	return grupos, cur.Err()
}
