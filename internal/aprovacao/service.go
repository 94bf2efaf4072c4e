package aprovacao

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

var (
	ErrNotFound         = errors.New("cotacao or approval not found")
	ErrInvalidSelection = errors.New("invalid level selection")
	ErrNotAuthorized    = errors.New("approval not authorized")
	ErrAlreadyApproved  = errors.New("level already approved")
)

type QuoteStore interface {
	GetByID(ctx context.Context, id string) (*models.Quote, error)
}

// ApprovalStore persiste as linhas de aprovação. ReplaceForQuote é
// tudo-ou-nada (apaga as linhas atuais e insere o lote novo);
// ApproveOne é o compare-and-set condicionado a aprovada=false — quem
// perde a corrida recebe ErrAlreadyApproved.
type ApprovalStore interface {
	ListByQuote(ctx context.Context, cotacaoID string) ([]models.Approval, error)
	ReplaceForQuote(ctx context.Context, cotacaoID string, linhas []models.Approval) error
	ApproveOne(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID, nome, observacao string, em time.Time) (*models.Approval, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp.Table) error
}

// Service amarra resolver + gate + persistência e publica a trilha de
// auditoria no broker.
type Service struct {
	Quotes    QuoteStore
	Approvals ApprovalStore
	Users     UserDirectory
	Perms     *PermissionResolver
	Pub       Publisher
	Log       *slog.Logger
}

func NewService(quotes QuoteStore, approvals ApprovalStore, users UserDirectory, perms *PermissionResolver, pub Publisher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{Quotes: quotes, Approvals: approvals, Users: users, Perms: perms, Pub: pub, Log: log.With("cmp", "aprovacao")}
}

// SelectLevels declara quais níveis a cotação exige. Substituição
// TOTAL: as linhas anteriores (e qualquer aprovação já dada) são
// descartadas — só chamar de novo para reiniciar o fluxo de propósito.
// Níveis fora do catálogo são descartados em silêncio; se não sobrar
// nenhum, ErrInvalidSelection.
func (s *Service) SelectLevels(ctx context.Context, cotacaoID string, niveis []models.Nivel) ([]models.Approval, error) {
	cot, err := s.Quotes.GetByID(ctx, cotacaoID)
	if err != nil {
		return nil, err
	}

	agora := time.Now().UTC()
	visto := map[models.Nivel]bool{}
	var linhas []models.Approval
	for _, n := range AllLevels() {
		for _, pedido := range niveis {
			if pedido == n && IsValidLevel(n) && !visto[n] {
				visto[n] = true
				linhas = append(linhas, models.Approval{
					ID:          uuid.NewString(),
					CotacaoID:   cot.ID,
					Nivel:       n,
					Tier:        TierOf(n),
					Obrigatoria: true,
					CreatedAt:   agora,
				})
			}
		}
	}
	if len(linhas) == 0 {
		return nil, ErrInvalidSelection
	}

	if err := s.Approvals.ReplaceForQuote(ctx, cot.ID, linhas); err != nil {
		return nil, fmt.Errorf("replace aprovacoes: %w", err)
	}

	s.publishEvent("Seleção", cot, "", "", nomesSelecao(linhas))
	return linhas, nil
}

// CanApprove responde se o nível pode ser aprovado AGORA pelo usuário.
// "Não" é resposta, não erro; erro só quando um colaborador falha.
func (s *Service) CanApprove(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID string) (bool, error) {
	cot, err := s.Quotes.GetByID(ctx, cotacaoID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	linhas, err := s.Approvals.ListByQuote(ctx, cot.ID)
	if err != nil {
		return false, err
	}
	if !ordemPermite(linhas, nivel, cot.Status) {
		return false, nil
	}
	return s.Perms.HasLevel(ctx, usuarioID, nivel, cot.CNPJ)
}

// Approve registra a aprovação de um nível. Revalida o gate e grava com
// compare-and-set: entre dois aprovadores simultâneos do mesmo nível,
// exatamente um vence; o outro recebe ErrAlreadyApproved.
func (s *Service) Approve(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID, observacao string) (*models.Approval, error) {
	cot, err := s.Quotes.GetByID(ctx, cotacaoID)
	if err != nil {
		return nil, err
	}
	linhas, err := s.Approvals.ListByQuote(ctx, cot.ID)
	if err != nil {
		return nil, err
	}

	if !ordemPermite(linhas, nivel, cot.Status) {
		// diagnóstico no wrap; o chamador não deve depender de qual foi
		linha := findApproval(linhas, nivel)
		switch {
		case linha != nil && linha.Obrigatoria && linha.Aprovada:
			return nil, fmt.Errorf("%w: nivel %s", ErrAlreadyApproved, nivel)
		case linha == nil || !linha.Obrigatoria:
			return nil, fmt.Errorf("%w: nivel %s nao exigido", ErrNotAuthorized, nivel)
		default:
			return nil, fmt.Errorf("%w: ordem de tiers pendente para %s", ErrNotAuthorized, nivel)
		}
	}

	ok, err := s.Perms.HasLevel(ctx, usuarioID, nivel, cot.CNPJ)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: usuario %s sem alcada %s", ErrNotAuthorized, usuarioID, nivel)
	}

	usr, err := s.Users.GetByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	nome := usr.Nome
	if nome == "" {
		nome = usr.Email
	}

	aprovada, err := s.Approvals.ApproveOne(ctx, cot.ID, nivel, usr.ID, nome, observacao, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.publishEvent("Aprovação", cot, string(nivel), nome, "")
	return aprovada, nil
}

// ListApprovals retorna as linhas da cotação em ordem de tier (empate:
// ordem do catálogo).
func (s *Service) ListApprovals(ctx context.Context, cotacaoID string) ([]models.Approval, error) {
	if _, err := s.Quotes.GetByID(ctx, cotacaoID); err != nil {
		return nil, err
	}
	linhas, err := s.Approvals.ListByQuote(ctx, cotacaoID)
	if err != nil {
		return nil, err
	}
	sortApprovals(linhas)
	return linhas, nil
}

func (s *Service) SelectedLevels(ctx context.Context, cotacaoID string) ([]models.Nivel, error) {
	linhas, err := s.ListApprovals(ctx, cotacaoID)
	if err != nil {
		return nil, err
	}
	niveis := make([]models.Nivel, 0, len(linhas))
	for _, l := range linhas {
		if l.Obrigatoria {
			niveis = append(niveis, l.Nivel)
		}
	}
	return niveis, nil
}

func (s *Service) ApprovedLevels(ctx context.Context, cotacaoID string) ([]models.Nivel, error) {
	linhas, err := s.ListApprovals(ctx, cotacaoID)
	if err != nil {
		return nil, err
	}
	var niveis []models.Nivel
	for _, l := range linhas {
		if l.Obrigatoria && l.Aprovada {
			niveis = append(niveis, l.Nivel)
		}
	}
	return niveis, nil
}

func (s *Service) UserLevels(ctx context.Context, usuarioID, cnpj string) ([]models.Nivel, error) {
	return s.Perms.ResolveLevels(ctx, usuarioID, cnpj)
}

// NextPendingLevel devolve o primeiro nível pendente que ESTE usuário já
// pode aprovar, na ordem de tier; ok=false se não há nenhum.
func (s *Service) NextPendingLevel(ctx context.Context, cotacaoID, usuarioID string) (models.Nivel, bool, error) {
	cot, err := s.Quotes.GetByID(ctx, cotacaoID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	linhas, err := s.Approvals.ListByQuote(ctx, cot.ID)
	if err != nil {
		return "", false, err
	}
	permitidos, err := s.Perms.ResolveLevels(ctx, usuarioID, cot.CNPJ)
	if err != nil {
		return "", false, err
	}
	temNivel := map[models.Nivel]bool{}
	for _, n := range permitidos {
		temNivel[n] = true
	}

	sortApprovals(linhas)
	for _, l := range linhas {
		if !l.Obrigatoria || l.Aprovada || !temNivel[l.Nivel] {
			continue
		}
		if ordemPermite(linhas, l.Nivel, cot.Status) {
			return l.Nivel, true, nil
		}
	}
	return "", false, nil
}

// AllApproved diz se toda linha obrigatória já foi aprovada.
func (s *Service) AllApproved(ctx context.Context, cotacaoID string) (bool, error) {
	linhas, err := s.ListApprovals(ctx, cotacaoID)
	if err != nil {
		return false, err
	}
	for _, l := range linhas {
		if l.Obrigatoria && !l.Aprovada {
			return false, nil
		}
	}
	return true, nil
}

func nomesSelecao(linhas []models.Approval) string {
	nomes := make([]string, 0, len(linhas))
	for _, l := range linhas {
		nomes = append(nomes, string(l.Nivel))
	}
	return strings.Join(nomes, ",")
}

// trilha de auditoria: melhor esforço, nunca derruba a operação
func (s *Service) publishEvent(acao string, cot *models.Quote, nivel, quem, niveis string) {
	if s.Pub == nil || cot == nil {
		return
	}
	msg := fmt.Sprintf("%s de COTAÇÃO %s", acao, cot.Numero)
	if nivel != "" {
		msg = fmt.Sprintf("%s nível %s", msg, nivel)
	}
	if quem != "" {
		msg = fmt.Sprintf("%s por %s", msg, quem)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	headers := amqp.Table{
		"action":     strings.ToLower(acao), // seleção|aprovação
		"cotacao_id": cot.ID,
		"numero":     cot.Numero,
		"cnpj":       cot.CNPJ,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	if nivel != "" {
		headers["nivel"] = nivel
	}
	if niveis != "" {
		headers["niveis"] = niveis
	}
	if err := s.Pub.Publish(ctx, msg, headers); err != nil {
		s.Log.Warn("audit_publish_error", "err", err, "cotacao_id", cot.ID)
	}
}
