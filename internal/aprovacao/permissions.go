package aprovacao

import (
	"context"
	"strings"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

// GroupLister é o colaborador de vínculo usuário/grupo. cnpj vazio = sem
// recorte por empresa.
type GroupLister interface {
	GroupsOf(ctx context.Context, usuarioID, cnpj string) ([]string, error)
}

// Nomes de exibição canônicos de cada nível (1–2 variantes). O casamento
// é por substring, caso-insensível, depois de normalizar espaços.
var nomesPorNivel = map[models.Nivel][]string{
	models.NivelComprador:    {"Comprador"},
	models.NivelEngenheiro:   {"Engenheiro", "Engenharia"},
	models.NivelGerenteLocal: {"Gerente Local", "Gerente de Filial"},
	models.NivelGerenteGeral: {"Gerente Geral"},
	models.NivelDiretor:      {"Diretor", "Diretoria"},
	models.NivelPresidente:   {"Presidente", "Presidência"},
}

// PermissionResolver traduz grupos do usuário em níveis de aprovação.
// O fallback por varredura é uma heurística (aceita grupos com nomes
// "soltos"); para troca por tabela exata de papéis, basta substituir
// esta implementação sem tocar no gate.
type PermissionResolver struct {
	grupos GroupLister
}

func NewPermissionResolver(grupos GroupLister) *PermissionResolver {
	return &PermissionResolver{grupos: grupos}
}

func normalizaGrupo(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// caminho direto: o nome do grupo contém a variante canônica
// (cobre "Gerente Local SP", "Grupo Gerente Local" etc.)
func grupoCasaNivel(grupoNorm string, nivel models.Nivel) bool {
	for _, v := range nomesPorNivel[nivel] {
		if strings.Contains(grupoNorm, normalizaGrupo(v)) {
			return true
		}
	}
	return false
}

// ResolveLevels retorna os níveis que o usuário pode exercer, na ordem do
// catálogo. Conjunto vazio é resultado válido (sem alçada), não erro.
func (p *PermissionResolver) ResolveLevels(ctx context.Context, usuarioID, cnpj string) ([]models.Nivel, error) {
	grupos, err := p.grupos.GroupsOf(ctx, usuarioID, cnpj)
	if err != nil {
		return nil, err
	}
	norm := make([]string, 0, len(grupos))
	for _, g := range grupos {
		if n := normalizaGrupo(g); n != "" {
			norm = append(norm, n)
		}
	}

	var niveis []models.Nivel
	for _, nivel := range AllLevels() {
		for _, g := range norm {
			if grupoCasaNivel(g, nivel) {
				niveis = append(niveis, nivel)
				break
			}
		}
	}
	if len(niveis) > 0 {
		return niveis, nil
	}

	// fallback: varre todos os grupos contra todas as variantes, nas duas
	// direções ("Gerentes" casa com "Gerente Geral"). Heurística
	// propositalmente mais permissiva que o caminho direto.
	for _, nivel := range AllLevels() {
		for _, g := range norm {
			if casaFallback(g, nivel) {
				niveis = append(niveis, nivel)
				break
			}
		}
	}
	return niveis, nil
}

func casaFallback(grupoNorm string, nivel models.Nivel) bool {
	for _, v := range nomesPorNivel[nivel] {
		vn := normalizaGrupo(v)
		if strings.Contains(grupoNorm, vn) || strings.Contains(vn, grupoNorm) {
			return true
		}
	}
	return false
}

// HasLevel é a variante de nível único usada pelo gate. Só o caminho
// direto: precisa concordar com ResolveLevels nesse caminho.
func (p *PermissionResolver) HasLevel(ctx context.Context, usuarioID string, nivel models.Nivel, cnpj string) (bool, error) {
	grupos, err := p.grupos.GroupsOf(ctx, usuarioID, cnpj)
	if err != nil {
		return false, err
	}
	for _, g := range grupos {
		if grupoCasaNivel(normalizaGrupo(g), nivel) {
			return true, nil
		}
	}
	return false, nil
}
