package aprovacao

import (
	"sort"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

// Janela de status em que o tier 2 aprova sem ordem relativa (inclusive
// em paralelo). Fora dela vale a ordem normal por tier.
func statusLiberaTier2(status string) bool {
	switch status {
	case models.StatusFinalizada, models.StatusAnalisada, models.StatusAnalisadaAguardando:
		return true
	}
	return false
}

func findApproval(aprovacoes []models.Approval, nivel models.Nivel) *models.Approval {
	for i := range aprovacoes {
		if aprovacoes[i].Nivel == nivel {
			return &aprovacoes[i]
		}
	}
	return nil
}

// ordemPermite decide, só pela ordem (permissão fica com o chamador), se
// o nível pode ser aprovado agora, dado o snapshot das linhas da cotação
// e o status corrente do workflow.
func ordemPermite(aprovacoes []models.Approval, nivel models.Nivel, status string) bool {
	linha := findApproval(aprovacoes, nivel)
	if linha == nil || !linha.Obrigatoria || linha.Aprovada {
		return false // nada a aprovar, ou já feito
	}

	// exceção do tier simultâneo
	if statusLiberaTier2(status) && TierOf(nivel) == 2 {
		return true
	}

	tierAtual := TierOf(nivel)
	for _, a := range aprovacoes {
		if !a.Obrigatoria || a.Aprovada {
			continue
		}
		if a.Tier < tierAtual {
			return false
		}
	}

	// DIRETOR e PRESIDENTE exigem o tier 2 COMPLETO, além dos tiers
	// inferiores — regra observada do processo, não generalizar para
	// tiers hipotéticos.
	if nivel == models.NivelDiretor || nivel == models.NivelPresidente {
		for _, a := range aprovacoes {
			if a.Obrigatoria && !a.Aprovada && a.Tier == 2 {
				return false
			}
		}
	}
	return true
}

// posição do nível na ordem de declaração do catálogo
func catalogIndex(n models.Nivel) int {
	for i, c := range niveisOrdenados {
		if c == n {
			return i
		}
	}
	return len(niveisOrdenados)
}

// sortApprovals ordena por tier e, dentro do tier, pela ordem do
// catálogo.
func sortApprovals(aprovacoes []models.Approval) {
	sort.SliceStable(aprovacoes, func(i, j int) bool {
		if aprovacoes[i].Tier != aprovacoes[j].Tier {
			return aprovacoes[i].Tier < aprovacoes[j].Tier
		}
		return catalogIndex(aprovacoes[i].Nivel) < catalogIndex(aprovacoes[j].Nivel)
	})
}
