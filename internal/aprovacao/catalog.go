package aprovacao

import "github.com/compras-sa/aprovacao-cotacao/internal/models"

/*
Catálogo fixo de níveis e tiers:

	tier 1: COMPRADOR
	tier 2: ENGENHEIRO, GERENTE_LOCAL, GERENTE_GERAL (sem ordem entre si)
	tier 3: DIRETOR
	tier 4: PRESIDENTE

Tabela imutável, montada uma vez no load do pacote.
*/

// ordem de declaração do catálogo (usada como desempate dentro do tier)
var niveisOrdenados = []models.Nivel{
	models.NivelComprador,
	models.NivelEngenheiro,
	models.NivelGerenteLocal,
	models.NivelGerenteGeral,
	models.NivelDiretor,
	models.NivelPresidente,
}

var tiers = map[models.Nivel]int{
	models.NivelComprador:    1,
	models.NivelEngenheiro:   2,
	models.NivelGerenteLocal: 2,
	models.NivelGerenteGeral: 2,
	models.NivelDiretor:      3,
	models.NivelPresidente:   4,
}

// TierOf retorna o tier do nível; 0 se o nível não existe no catálogo.
func TierOf(n models.Nivel) int {
	return tiers[n]
}

// AllLevels retorna os seis níveis na ordem do catálogo.
func AllLevels() []models.Nivel {
	out := make([]models.Nivel, len(niveisOrdenados))
	copy(out, niveisOrdenados)
	return out
}

// LevelsAtTier retorna os níveis de um tier, na ordem do catálogo.
func LevelsAtTier(t int) []models.Nivel {
	var out []models.Nivel
	for _, n := range niveisOrdenados {
		if tiers[n] == t {
			out = append(out, n)
		}
	}
	return out
}

func IsValidLevel(n models.Nivel) bool {
	_, ok := tiers[n]
	return ok
}
