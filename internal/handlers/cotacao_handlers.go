package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/compras-sa/aprovacao-cotacao/internal/aprovacao"
	"github.com/compras-sa/aprovacao-cotacao/internal/models"
	"github.com/compras-sa/aprovacao-cotacao/internal/utils"
)

type QuoteRepository interface {
	GetAll(ctx context.Context, limit, skip int64) ([]models.Quote, error)
	Create(ctx context.Context, c *models.Quote) (string, error)
	GetByID(ctx context.Context, id string) (*models.Quote, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type ApprovalService interface {
	SelectLevels(ctx context.Context, cotacaoID string, niveis []models.Nivel) ([]models.Approval, error)
	Approve(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID, observacao string) (*models.Approval, error)
	CanApprove(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID string) (bool, error)
	ListApprovals(ctx context.Context, cotacaoID string) ([]models.Approval, error)
	SelectedLevels(ctx context.Context, cotacaoID string) ([]models.Nivel, error)
	ApprovedLevels(ctx context.Context, cotacaoID string) ([]models.Nivel, error)
	NextPendingLevel(ctx context.Context, cotacaoID, usuarioID string) (models.Nivel, bool, error)
	UserLevels(ctx context.Context, usuarioID, cnpj string) ([]models.Nivel, error)
	AllApproved(ctx context.Context, cotacaoID string) (bool, error)
}

type CotacaoHandler struct {
	Repo QuoteRepository
	Svc  ApprovalService
}

func NewCotacaoHandler(repo QuoteRepository, svc ApprovalService) *CotacaoHandler {
	return &CotacaoHandler{Repo: repo, Svc: svc}
}

// garantir que a requisição venha no padrão /api/cotacoes/{id}[/...]
func parseCotacaoPath(path string) (string, []string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "api" && parts[1] == "cotacoes" && parts[2] != "" {
		return parts[2], parts[3:], true
	}
	return "", nil, false
}

func (h *CotacaoHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// coleção: GET lista / POST cria
func (h *CotacaoHandler) Cotacoes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	case http.MethodGet:
		q := r.URL.Query()
		limit := int64(50)
		skip := int64(0)
		if l := q.Get("limit"); l != "" {
			if v, err := strconv.ParseInt(l, 10, 64); err == nil && v > 0 && v <= 200 {
				limit = v
			}
		}
		if s := q.Get("skip"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil && v >= 0 {
				skip = v
			}
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		list, err := h.Repo.GetAll(ctx, limit, skip)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		utils.WriteJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var dto QuoteCreateDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validateQuoteCreateDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		c := models.Quote{
			ID:         uuid.NewString(),
			CNPJ:       utils.SanitizeCNPJ(dto.CNPJ),
			Numero:     dto.Numero,
			Descricao:  dto.Descricao,
			ValorTotal: dto.ValorTotal,
		}
		if !utils.ValidateCNPJ(c.CNPJ) {
			utils.BadRequest(w, "invalid cnpj")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if _, err := h.Repo.Create(ctx, &c); err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		utils.WriteJSON(w, http.StatusCreated, c)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// subárvore /api/cotacoes/{id}[/...]: cotação, aprovações, próximo nível
func (h *CotacaoHandler) CotacaoSubtree(w http.ResponseWriter, r *http.Request) {
	id, rest, ok := parseCotacaoPath(r.URL.Path)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch {
	case len(rest) == 0:
		h.cotacaoByID(w, r, id)
	case len(rest) == 1 && rest[0] == "aprovacoes":
		h.aprovacoes(w, r, id)
	case len(rest) == 1 && rest[0] == "proximo-nivel":
		h.proximoNivel(w, r, id)
	case len(rest) == 2 && rest[0] == "aprovacoes" && rest[1] == "niveis":
		h.niveis(w, r, id)
	case len(rest) == 2 && rest[0] == "aprovacoes":
		h.aprovacaoNivel(w, r, id, models.Nivel(strings.ToUpper(rest[1])))
	default:
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (h *CotacaoHandler) cotacaoByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, c)

	// o workflow externo é o dono do status; aqui só espelhamos o slug
	case http.MethodPatch:
		var dto QuoteStatusPatchDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validateStatusPatchDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.Repo.UpdateStatus(ctx, id, *dto.Status); err != nil {
			writeServiceError(w, err)
			return
		}
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			utils.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
			return
		}
		utils.WriteJSON(w, http.StatusOK, c)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// GET lista as linhas (ordem de tier) / POST seleciona os níveis exigidos
func (h *CotacaoHandler) aprovacoes(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		linhas, err := h.Svc.ListApprovals(ctx, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, linhas)

	case http.MethodPost:
		var dto SelectLevelsDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validateSelectLevelsDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}

		niveis := make([]models.Nivel, 0, len(dto.Niveis))
		for _, n := range dto.Niveis {
			niveis = append(niveis, models.Nivel(strings.ToUpper(strings.TrimSpace(n))))
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		linhas, err := h.Svc.SelectLevels(ctx, id, niveis)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusCreated, linhas)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// resumo de níveis: selecionados, aprovados e se o conjunto está completo
func (h *CotacaoHandler) niveis(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	selecionados, err := h.Svc.SelectedLevels(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	aprovados, err := h.Svc.ApprovedLevels(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	completa, err := h.Svc.AllApproved(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"selecionados": selecionados,
		"aprovados":    aprovados,
		"completa":     completa,
	})
}

// POST aprova o nível / GET responde se o usuário pode aprovar agora
func (h *CotacaoHandler) aprovacaoNivel(w http.ResponseWriter, r *http.Request, id string, nivel models.Nivel) {
	switch r.Method {
	case http.MethodPost:
		var dto ApproveDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, utils.FormatUnknownFieldError(err))
			return
		}
		if err := validateApproveDTO(dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		obs := ""
		if dto.Observacao != nil {
			obs = *dto.Observacao
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		linha, err := h.Svc.Approve(ctx, id, nivel, dto.UsuarioID, obs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, linha)

	case http.MethodGet:
		usuarioID := r.URL.Query().Get("usuario_id")
		if usuarioID == "" {
			utils.BadRequest(w, "usuario_id is required")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		pode, err := h.Svc.CanApprove(ctx, id, nivel, usuarioID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]any{"nivel": nivel, "pode_aprovar": pode})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CotacaoHandler) proximoNivel(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	usuarioID := r.URL.Query().Get("usuario_id")
	if usuarioID == "" {
		utils.BadRequest(w, "usuario_id is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	nivel, ok, err := h.Svc.NextPendingLevel(ctx, id, usuarioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"nivel": nivel})
}

// garantir que a requisição venha no padrão /api/usuarios/{id}/niveis
func parseUsuarioNiveisPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 4 && parts[0] == "api" && parts[1] == "usuarios" && parts[2] != "" && parts[3] == "niveis" {
		return parts[2], true
	}
	return "", false
}

func (h *CotacaoHandler) UsuarioNiveis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	usuarioID, ok := parseUsuarioNiveisPath(r.URL.Path)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	cnpj := utils.SanitizeCNPJ(r.URL.Query().Get("cnpj"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	niveis, err := h.Svc.UserLevels(ctx, usuarioID, cnpj)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"usuario_id": usuarioID, "niveis": niveis})
}

// mapeia os erros do serviço para HTTP; o gate devolve 403, a corrida
// perdida 409, seleção vazia 400
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, aprovacao.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, aprovacao.ErrInvalidSelection):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid level selection"})
	case errors.Is(err, aprovacao.ErrNotAuthorized):
		utils.WriteJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, aprovacao.ErrAlreadyApproved):
		utils.WriteJSON(w, http.StatusConflict, map[string]string{"error": "level already approved"})
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
