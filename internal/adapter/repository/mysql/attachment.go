package mysql

import (
	"context"

	attachmentDomain "vivim-backend/internal/domain/attachment"

	"gorm.io/gorm"
)

type AttachmentRepository struct{ db *gorm.DB }

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, ref *attachmentDomain.Ref) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *AttachmentRepository) GetByAttachmentID(ctx context.Context, attachmentID string) (*attachmentDomain.Ref, error) {
	var out attachmentDomain.Ref
	res := r.db.WithContext(ctx).Where("attachment_id = ?", attachmentID).First(&out)
	return &out, res.Error
}

func (r *AttachmentRepository) ListByOwner(ctx context.Context, ownerType attachmentDomain.OwnerType, ownerID uint64) ([]attachmentDomain.Ref, error) {
	var out []attachmentDomain.Ref
	res := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AttachmentRepository) CountByOwner(ctx context.Context, ownerType attachmentDomain.OwnerType, ownerID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&attachmentDomain.Ref{}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Count(&n)
	return n, res.Error
}

func (r *AttachmentRepository) SoftDelete(ctx context.Context, ref *attachmentDomain.Ref, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(ref).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(ref).Error
}
