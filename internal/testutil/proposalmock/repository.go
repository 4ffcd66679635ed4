package proposalmock

import (
	"context"

	domain "vivim-backend/internal/domain/proposal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                   func(ctx context.Context, p *domain.Proposal) error
	GetByProposalIDFn          func(ctx context.Context, proposalID string) (*domain.Proposal, error)
	GetByProposalIDForUpdateFn func(ctx context.Context, proposalID string) (*domain.Proposal, error)
	GetByIDForUpdateFn         func(ctx context.Context, id uint64) (*domain.Proposal, error)
	SaveFn                     func(ctx context.Context, p *domain.Proposal) error
	SoftDeleteFn               func(ctx context.Context, p *domain.Proposal, deletedBy string) error
	ListByStageIDFn            func(ctx context.Context, stageID uint64) ([]domain.Proposal, error)
	CountByStageIDFn           func(ctx context.Context, stageID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Proposal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByProposalID(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	if m.GetByProposalIDFn != nil {
		return m.GetByProposalIDFn(ctx, proposalID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByProposalIDForUpdate(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	if m.GetByProposalIDForUpdateFn != nil {
		return m.GetByProposalIDForUpdateFn(ctx, proposalID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Proposal, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) Save(ctx context.Context, p *domain.Proposal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) SoftDelete(ctx context.Context, p *domain.Proposal, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, p, deletedBy)
	}
	return nil
}
func (m *Repo) ListByStageID(ctx context.Context, stageID uint64) ([]domain.Proposal, error) {
	if m.ListByStageIDFn != nil {
		return m.ListByStageIDFn(ctx, stageID)
	}
	return nil, nil
}
func (m *Repo) CountByStageID(ctx context.Context, stageID uint64) (int64, error) {
	if m.CountByStageIDFn != nil {
		return m.CountByStageIDFn(ctx, stageID)
	}
	return 0, nil
}

var _ domain.ApproverRepository = (*ApproverRepo)(nil)

type ApproverRepo struct {
	CreateFn                   func(ctx context.Context, a *domain.Approver) error
	GetByApproverIDFn          func(ctx context.Context, approverID string) (*domain.Approver, error)
	GetByApproverIDForUpdateFn func(ctx context.Context, approverID string) (*domain.Approver, error)
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.Approver, error)
	ListByProposalIDFn         func(ctx context.Context, proposalID uint64) ([]domain.Approver, error)
	DeleteFn                   func(ctx context.Context, a *domain.Approver) error
}

func (m *ApproverRepo) Create(ctx context.Context, a *domain.Approver) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *ApproverRepo) GetByApproverID(ctx context.Context, approverID string) (*domain.Approver, error) {
	if m.GetByApproverIDFn != nil {
		return m.GetByApproverIDFn(ctx, approverID)
	}
	return nil, context.Canceled
}
func (m *ApproverRepo) GetByApproverIDForUpdate(ctx context.Context, approverID string) (*domain.Approver, error) {
	if m.GetByApproverIDForUpdateFn != nil {
		return m.GetByApproverIDForUpdateFn(ctx, approverID)
	}
	return nil, context.Canceled
}
func (m *ApproverRepo) GetByID(ctx context.Context, id uint64) (*domain.Approver, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *ApproverRepo) ListByProposalID(ctx context.Context, proposalID uint64) ([]domain.Approver, error) {
	if m.ListByProposalIDFn != nil {
		return m.ListByProposalIDFn(ctx, proposalID)
	}
	return nil, nil
}
func (m *ApproverRepo) Delete(ctx context.Context, a *domain.Approver) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, a)
	}
	return nil
}
