package models

import "time"

type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Nome      string    `bson:"nome" json:"nome"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Membership é o vínculo usuário -> grupo, opcionalmente restrito a uma
// empresa (cnpj vazio = vínculo global). Consultado, nunca alterado,
// pelo fluxo de aprovação.
type Membership struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UsuarioID string    `bson:"usuario_id" json:"usuario_id"`
	Grupo     string    `bson:"grupo" json:"grupo"`
	CNPJ      string    `bson:"cnpj,omitempty" json:"cnpj,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
