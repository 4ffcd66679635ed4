package mysql

import (
	"context"

	decisionDomain "vivim-backend/internal/domain/decision"

	"gorm.io/gorm"
)

type DecisionRepository struct{ db *gorm.DB }

func NewDecisionRepository(db *gorm.DB) *DecisionRepository { return &DecisionRepository{db: db} }

func (r *DecisionRepository) Create(ctx context.Context, d *decisionDomain.Decision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DecisionRepository) GetByDecisionID(ctx context.Context, decisionID string) (*decisionDomain.Decision, error) {
	var out decisionDomain.Decision
	res := r.db.WithContext(ctx).Where("decision_id = ?", decisionID).First(&out)
	return &out, res.Error
}

func (r *DecisionRepository) ListByApproverID(ctx context.Context, approverID uint64) ([]decisionDomain.Decision, error) {
	var out []decisionDomain.Decision
	res := r.db.WithContext(ctx).
		Where("approver_id = ?", approverID).
		Order("decided_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DecisionRepository) ListByApproverIDs(ctx context.Context, approverIDs []uint64) ([]decisionDomain.Decision, error) {
	if len(approverIDs) == 0 {
		return nil, nil
	}
	var out []decisionDomain.Decision
	res := r.db.WithContext(ctx).
		Where("approver_id IN ?", approverIDs).
		Order("decided_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DecisionRepository) CountByApproverID(ctx context.Context, approverID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&decisionDomain.Decision{}).
		Where("approver_id = ?", approverID).
		Count(&n)
	return n, res.Error
}

func (r *DecisionRepository) SoftDelete(ctx context.Context, d *decisionDomain.Decision, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(d).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(d).Error
}
