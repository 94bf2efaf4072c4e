package handlers

import (
	"context"
	"errors"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
)

type repoMock struct {
	GetAllFn       func(ctx context.Context, limit, skip int64) ([]models.Quote, error)
	CreateFn       func(ctx context.Context, c *models.Quote) (string, error)
	GetByIDFn      func(ctx context.Context, id string) (*models.Quote, error)
	UpdateStatusFn func(ctx context.Context, id, status string) error
}

func (m *repoMock) GetAll(ctx context.Context, limit, skip int64) ([]models.Quote, error) {
	if m.GetAllFn == nil {
		return nil, errors.New("GetAllFn not set")
	}
	return m.GetAllFn(ctx, limit, skip)
}
func (m *repoMock) Create(ctx context.Context, c *models.Quote) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, c)
}
func (m *repoMock) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *repoMock) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFn == nil {
		return errors.New("UpdateStatusFn not set")
	}
	return m.UpdateStatusFn(ctx, id, status)
}

type svcMock struct {
	SelectLevelsFn     func(ctx context.Context, cotacaoID string, niveis []models.Nivel) ([]models.Approval, error)
	ApproveFn          func(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID, observacao string) (*models.Approval, error)
	CanApproveFn       func(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID string) (bool, error)
	ListApprovalsFn    func(ctx context.Context, cotacaoID string) ([]models.Approval, error)
	SelectedLevelsFn   func(ctx context.Context, cotacaoID string) ([]models.Nivel, error)
	ApprovedLevelsFn   func(ctx context.Context, cotacaoID string) ([]models.Nivel, error)
	NextPendingLevelFn func(ctx context.Context, cotacaoID, usuarioID string) (models.Nivel, bool, error)
	UserLevelsFn       func(ctx context.Context, usuarioID, cnpj string) ([]models.Nivel, error)
	AllApprovedFn      func(ctx context.Context, cotacaoID string) (bool, error)
}

func (m *svcMock) SelectLevels(ctx context.Context, cotacaoID string, niveis []models.Nivel) ([]models.Approval, error) {
	if m.SelectLevelsFn == nil {
		return nil, errors.New("SelectLevelsFn not set")
	}
	return m.SelectLevelsFn(ctx, cotacaoID, niveis)
}
func (m *svcMock) Approve(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID, observacao string) (*models.Approval, error) {
	if m.ApproveFn == nil {
		return nil, errors.New("ApproveFn not set")
	}
	return m.ApproveFn(ctx, cotacaoID, nivel, usuarioID, observacao)
}
func (m *svcMock) CanApprove(ctx context.Context, cotacaoID string, nivel models.Nivel, usuarioID string) (bool, error) {
	if m.CanApproveFn == nil {
		return false, errors.New("CanApproveFn not set")
	}
	return m.CanApproveFn(ctx, cotacaoID, nivel, usuarioID)
}
func (m *svcMock) ListApprovals(ctx context.Context, cotacaoID string) ([]models.Approval, error) {
	if m.ListApprovalsFn == nil {
		return nil, errors.New("ListApprovalsFn not set")
	}
	return m.ListApprovalsFn(ctx, cotacaoID)
}
func (m *svcMock) SelectedLevels(ctx context.Context, cotacaoID string) ([]models.Nivel, error) {
	if m.SelectedLevelsFn == nil {
		return nil, errors.New("SelectedLevelsFn not set")
	}
	return m.SelectedLevelsFn(ctx, cotacaoID)
}
func (m *svcMock) ApprovedLevels(ctx context.Context, cotacaoID string) ([]models.Nivel, error) {
	if m.ApprovedLevelsFn == nil {
		return nil, errors.New("ApprovedLevelsFn not set")
	}
	return m.ApprovedLevelsFn(ctx, cotacaoID)
}
func (m *svcMock) NextPendingLevel(ctx context.Context, cotacaoID, usuarioID string) (models.Nivel, bool, error) {
	if m.NextPendingLevelFn == nil {
		return "", false, errors.New("NextPendingLevelFn not set")
	}
	return m.NextPendingLevelFn(ctx, cotacaoID, usuarioID)
}
func (m *svcMock) UserLevels(ctx context.Context, usuarioID, cnpj string) ([]models.Nivel, error) {
	if m.UserLevelsFn == nil {
		return nil, errors.New("UserLevelsFn not set")
	}
	return m.UserLevelsFn(ctx, usuarioID, cnpj)
}
func (m *svcMock) AllApproved(ctx context.Context, cotacaoID string) (bool, error) {
	if m.AllApprovedFn == nil {
		return false, errors.New("AllApprovedFn not set")
	}
	return m.AllApprovedFn(ctx, cotacaoID)
}
