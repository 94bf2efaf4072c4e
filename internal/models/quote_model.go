package models

import "time"

// Status da cotação vem do workflow externo; este serviço só LÊ o slug
// para decidir a regra de aprovação (nunca escreve por conta própria).
const (
	StatusPendente            = "pendente"
	StatusAnalisada           = "analisada"
	StatusAnalisadaAguardando = "analisada_aguardando"
	StatusFinalizada          = "finalizada"
)

type Quote struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Numero     string    `bson:"numero" json:"numero"`
	CNPJ       string    `bson:"cnpj" json:"cnpj"` // empresa dona da cotação (normalizado, apenas dígitos)
	Descricao  string    `bson:"descricao" json:"descricao"`
	ValorTotal float64   `bson:"valor_total" json:"valor_total"`
	Status     string    `bson:"status" json:"status"` // slug opaco do workflow
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
