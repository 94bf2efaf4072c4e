package models

import "time"

// Nivel identifica um papel de aprovação do catálogo fixo.
type Nivel string

const (
	NivelComprador    Nivel = "COMPRADOR"
	NivelEngenheiro   Nivel = "ENGENHEIRO"
	NivelGerenteLocal Nivel = "GERENTE_LOCAL"
	NivelGerenteGeral Nivel = "GERENTE_GERAL"
	NivelDiretor      Nivel = "DIRETOR"
	NivelPresidente   Nivel = "PRESIDENTE"
)

// Approval é a linha de aprovação de um nível para uma cotação.
// Obrigatoria é gravada explicitamente: a existência da linha NÃO é a
// fonte da verdade sobre "é exigida" (evita semântica acidental se um
// dia houver soft-delete).
type Approval struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	CotacaoID       string     `bson:"cotacao_id" json:"cotacao_id"`
	Nivel           Nivel      `bson:"nivel" json:"nivel"`
	Tier            int        `bson:"tier" json:"tier"`
	Obrigatoria     bool       `bson:"obrigatoria" json:"obrigatoria"`
	Aprovada        bool       `bson:"aprovada" json:"aprovada"`
	AprovadaPor     string     `bson:"aprovada_por,omitempty" json:"aprovada_por,omitempty"`
	AprovadaPorNome string     `bson:"aprovada_por_nome,omitempty" json:"aprovada_por_nome,omitempty"` // snapshot: sobrevive à exclusão/renome do usuário
	AprovadaEm      *time.Time `bson:"aprovada_em,omitempty" json:"aprovada_em,omitempty"`
	Observacao      string     `bson:"observacao,omitempty" json:"observacao,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
}
