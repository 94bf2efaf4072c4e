package aprovacao

/*

go test -run 'TestOrdem|TestCatalogo' -v ./internal/aprovacao -count=1

*/

import (
	"testing"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

func linhasDe(niveis ...models.Nivel) []models.Approval {
	out := make([]models.Approval, 0, len(niveis))
	for _, n := range niveis {
		out = append(out, models.Approval{
			CotacaoID:   "c1",
			Nivel:       n,
			Tier:        TierOf(n),
			Obrigatoria: true,
		})
	}
	return out
}

func aprova(linhas []models.Approval, niveis ...models.Nivel) []models.Approval {
	for _, n := range niveis {
		for i := range linhas {
			if linhas[i].Nivel == n {
				linhas[i].Aprovada = true
			}
		}
	}
	return linhas
}

func TestCatalogo_TiersFixos(t *testing.T) {
	cases := []struct {
		nivel models.Nivel
		tier  int
	}{
		{models.NivelComprador, 1},
		{models.NivelEngenheiro, 2},
		{models.NivelGerenteLocal, 2},
		{models.NivelGerenteGeral, 2},
		{models.NivelDiretor, 3},
		{models.NivelPresidente, 4},
	}
	for _, tc := range cases {
		if got := TierOf(tc.nivel); got != tc.tier {
			t.Fatalf("%s: tier=%d want=%d", tc.nivel, got, tc.tier)
		}
	}
	if got := len(AllLevels()); got != 6 {
		t.Fatalf("AllLevels=%d want=6", got)
	}
	if got := len(LevelsAtTier(2)); got != 3 {
		t.Fatalf("tier2=%d want=3", got)
	}
	if TierOf("ESTAGIARIO") != 0 || IsValidLevel("ESTAGIARIO") {
		t.Fatal("nivel fora do catálogo deve ser inválido")
	}
}

func TestOrdem_LinhaAusenteOuJaAprovada(t *testing.T) {
	linhas := linhasDe(models.NivelComprador)
	if ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("nivel sem linha não pode aprovar")
	}
	linhas = aprova(linhas, models.NivelComprador)
	if ordemPermite(linhas, models.NivelComprador, models.StatusPendente) {
		t.Fatal("linha já aprovada não pode aprovar de novo")
	}
}

// tier 1 nunca é bloqueado por ninguém
func TestOrdem_CompradorSempreLivre(t *testing.T) {
	linhas := linhasDe(models.NivelComprador, models.NivelEngenheiro, models.NivelDiretor)
	if !ordemPermite(linhas, models.NivelComprador, models.StatusPendente) {
		t.Fatal("COMPRADOR deveria poder aprovar primeiro")
	}
}

func TestOrdem_DiretorEsperaTiersInferiores(t *testing.T) {
	linhas := linhasDe(models.NivelComprador, models.NivelEngenheiro, models.NivelDiretor)

	if ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("DIRETOR não pode aprovar antes de COMPRADOR e ENGENHEIRO")
	}
	linhas = aprova(linhas, models.NivelComprador)
	if ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("DIRETOR não pode aprovar com ENGENHEIRO pendente")
	}
	linhas = aprova(linhas, models.NivelEngenheiro)
	if !ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("DIRETOR deveria poder aprovar com tiers 1 e 2 completos")
	}
}

// os três níveis do tier 2 não se bloqueiam entre si
func TestOrdem_Tier2Independente(t *testing.T) {
	linhas := linhasDe(models.NivelEngenheiro, models.NivelGerenteLocal, models.NivelGerenteGeral)

	for _, n := range []models.Nivel{models.NivelEngenheiro, models.NivelGerenteLocal, models.NivelGerenteGeral} {
		if !ordemPermite(linhas, n, models.StatusPendente) {
			t.Fatalf("%s deveria poder aprovar sem esperar os pares do tier 2", n)
		}
	}

	linhas = aprova(linhas, models.NivelGerenteLocal)
	if !ordemPermite(linhas, models.NivelEngenheiro, models.StatusPendente) {
		t.Fatal("aprovação de um par do tier 2 não pode bloquear os demais")
	}
}

// fora da janela simultânea, o tier 1 pendente bloqueia o tier 2
func TestOrdem_Tier1BloqueiaTier2ForaDaJanela(t *testing.T) {
	linhas := linhasDe(models.NivelComprador, models.NivelEngenheiro)
	if ordemPermite(linhas, models.NivelEngenheiro, models.StatusPendente) {
		t.Fatal("ENGENHEIRO não pode aprovar com COMPRADOR pendente fora da janela")
	}
}

func TestOrdem_JanelaSimultaneaLiberaTier2(t *testing.T) {
	linhas := linhasDe(models.NivelComprador, models.NivelEngenheiro, models.NivelGerenteLocal)

	for _, status := range []string{models.StatusFinalizada, models.StatusAnalisada, models.StatusAnalisadaAguardando} {
		if !ordemPermite(linhas, models.NivelEngenheiro, status) {
			t.Fatalf("status %s deveria liberar ENGENHEIRO mesmo com COMPRADOR pendente", status)
		}
		if !ordemPermite(linhas, models.NivelGerenteLocal, status) {
			t.Fatalf("status %s deveria liberar GERENTE_LOCAL", status)
		}
	}

	// a janela NÃO libera tiers 3 e 4
	linhas = append(linhas, linhasDe(models.NivelDiretor)...)
	if ordemPermite(linhas, models.NivelDiretor, models.StatusFinalizada) {
		t.Fatal("janela simultânea não vale para DIRETOR")
	}
}

// DIRETOR e PRESIDENTE exigem o tier 2 completo, não só os tiers abaixo
func TestOrdem_DiretorExigeTier2Completo(t *testing.T) {
	linhas := linhasDe(
		models.NivelComprador,
		models.NivelEngenheiro,
		models.NivelGerenteLocal,
		models.NivelGerenteGeral,
		models.NivelDiretor,
	)
	linhas = aprova(linhas, models.NivelComprador, models.NivelEngenheiro, models.NivelGerenteLocal)

	if ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("DIRETOR bloqueado enquanto GERENTE_GERAL obrigatório estiver pendente")
	}
	linhas = aprova(linhas, models.NivelGerenteGeral)
	if !ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("DIRETOR liberado com tier 2 completo")
	}
}

func TestOrdem_PresidenteEsperaDiretor(t *testing.T) {
	linhas := linhasDe(models.NivelComprador, models.NivelDiretor, models.NivelPresidente)
	linhas = aprova(linhas, models.NivelComprador)

	if ordemPermite(linhas, models.NivelPresidente, models.StatusPendente) {
		t.Fatal("PRESIDENTE não pode aprovar com DIRETOR pendente")
	}
	linhas = aprova(linhas, models.NivelDiretor)
	if !ordemPermite(linhas, models.NivelPresidente, models.StatusPendente) {
		t.Fatal("PRESIDENTE liberado com tudo abaixo aprovado")
	}
}

// níveis nunca selecionados não contam como bloqueio
func TestOrdem_NaoSelecionadoNaoBloqueia(t *testing.T) {
	linhas := linhasDe(models.NivelEngenheiro, models.NivelDiretor)
	linhas = aprova(linhas, models.NivelEngenheiro)

	// COMPRADOR nunca foi exigido; DIRETOR só espera o que existe
	if !ordemPermite(linhas, models.NivelDiretor, models.StatusPendente) {
		t.Fatal("linha nunca selecionada não deveria bloquear")
	}
}

func TestSortApprovals_TierDepoisCatalogo(t *testing.T) {
	linhas := linhasDe(
		models.NivelPresidente,
		models.NivelGerenteGeral,
		models.NivelComprador,
		models.NivelEngenheiro,
	)
	sortApprovals(linhas)

	want := []models.Nivel{
		models.NivelComprador,
		models.NivelEngenheiro,
		models.NivelGerenteGeral,
		models.NivelPresidente,
	}
	for i, n := range want {
		if linhas[i].Nivel != n {
			t.Fatalf("pos %d: got=%s want=%s", i, linhas[i].Nivel, n)
		}
	}
}
