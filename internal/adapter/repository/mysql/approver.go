package mysql

import (
	"context"

	proposalDomain "vivim-backend/internal/domain/proposal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApproverRepository struct{ db *gorm.DB }

func NewApproverRepository(db *gorm.DB) *ApproverRepository { return &ApproverRepository{db: db} }

func (r *ApproverRepository) Create(ctx context.Context, a *proposalDomain.Approver) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApproverRepository) GetByApproverID(ctx context.Context, approverID string) (*proposalDomain.Approver, error) {
	var out proposalDomain.Approver
	res := r.db.WithContext(ctx).Where("approver_id = ?", approverID).First(&out)
	return &out, res.Error
}

func (r *ApproverRepository) GetByApproverIDForUpdate(ctx context.Context, approverID string) (*proposalDomain.Approver, error) {
	var out proposalDomain.Approver
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("approver_id = ?", approverID).
		First(&out)
	return &out, res.Error
}

func (r *ApproverRepository) GetByID(ctx context.Context, id uint64) (*proposalDomain.Approver, error) {
	var out proposalDomain.Approver
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// join order = created_at, id
func (r *ApproverRepository) ListByProposalID(ctx context.Context, proposalID uint64) ([]proposalDomain.Approver, error) {
	var out []proposalDomain.Approver
	res := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// hard delete; rosters are only edited while the proposal is DRAFT
func (r *ApproverRepository) Delete(ctx context.Context, a *proposalDomain.Approver) error {
	return r.db.WithContext(ctx).Delete(a).Error
}
