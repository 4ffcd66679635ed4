package decisionmock

import (
	"context"

	domain "vivim-backend/internal/domain/decision"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, d *domain.Decision) error
	GetByDecisionIDFn   func(ctx context.Context, decisionID string) (*domain.Decision, error)
	ListByApproverIDFn  func(ctx context.Context, approverID uint64) ([]domain.Decision, error)
	ListByApproverIDsFn func(ctx context.Context, approverIDs []uint64) ([]domain.Decision, error)
	CountByApproverIDFn func(ctx context.Context, approverID uint64) (int64, error)
	SoftDeleteFn        func(ctx context.Context, d *domain.Decision, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Decision) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
func (m *Repo) GetByDecisionID(ctx context.Context, decisionID string) (*domain.Decision, error) {
	if m.GetByDecisionIDFn != nil {
		return m.GetByDecisionIDFn(ctx, decisionID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByApproverID(ctx context.Context, approverID uint64) ([]domain.Decision, error) {
	if m.ListByApproverIDFn != nil {
		return m.ListByApproverIDFn(ctx, approverID)
	}
	return nil, nil
}
func (m *Repo) ListByApproverIDs(ctx context.Context, approverIDs []uint64) ([]domain.Decision, error) {
	if m.ListByApproverIDsFn != nil {
		return m.ListByApproverIDsFn(ctx, approverIDs)
	}
	return nil, nil
}
func (m *Repo) CountByApproverID(ctx context.Context, approverID uint64) (int64, error) {
	if m.CountByApproverIDFn != nil {
		return m.CountByApproverIDFn(ctx, approverID)
	}
	return 0, nil
}
func (m *Repo) SoftDelete(ctx context.Context, d *domain.Decision, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, d, deletedBy)
	}
	return nil
}
