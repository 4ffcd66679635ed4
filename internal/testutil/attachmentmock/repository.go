package attachmentmock

import (
	"context"

	domain "vivim-backend/internal/domain/attachment"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn            func(ctx context.Context, r *domain.Ref) error
	GetByAttachmentIDFn func(ctx context.Context, attachmentID string) (*domain.Ref, error)
	ListByOwnerFn       func(ctx context.Context, ownerType domain.OwnerType, ownerID uint64) ([]domain.Ref, error)
	CountByOwnerFn      func(ctx context.Context, ownerType domain.OwnerType, ownerID uint64) (int64, error)
	SoftDeleteFn        func(ctx context.Context, r *domain.Ref, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Ref) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *Repo) GetByAttachmentID(ctx context.Context, attachmentID string) (*domain.Ref, error) {
	if m.GetByAttachmentIDFn != nil {
		return m.GetByAttachmentIDFn(ctx, attachmentID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByOwner(ctx context.Context, ownerType domain.OwnerType, ownerID uint64) ([]domain.Ref, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerType, ownerID)
	}
	return nil, nil
}
func (m *Repo) CountByOwner(ctx context.Context, ownerType domain.OwnerType, ownerID uint64) (int64, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, ownerType, ownerID)
	}
	return 0, nil
}
func (m *Repo) SoftDelete(ctx context.Context, r *domain.Ref, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, r, deletedBy)
	}
	return nil
}
