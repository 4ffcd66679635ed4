package mysql

import (
	"context"

	proposalDomain "vivim-backend/internal/domain/proposal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProposalRepository struct{ db *gorm.DB }

func NewProposalRepository(db *gorm.DB) *ProposalRepository { return &ProposalRepository{db: db} }

func (r *ProposalRepository) Create(ctx context.Context, p *proposalDomain.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProposalRepository) Save(ctx context.Context, p *proposalDomain.Proposal) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProposalRepository) GetByProposalID(ctx context.Context, proposalID string) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).Where("proposal_id = ?", proposalID).First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) GetByProposalIDForUpdate(ctx context.Context, proposalID string) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("proposal_id = ?", proposalID).
		First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) SoftDelete(ctx context.Context, p *proposalDomain.Proposal, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(p).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(p).Error
}

func (r *ProposalRepository) ListByStageID(ctx context.Context, stageID uint64) ([]proposalDomain.Proposal, error) {
	var out []proposalDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ProposalRepository) CountByStageID(ctx context.Context, stageID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&proposalDomain.Proposal{}).
		Where("stage_id = ?", stageID).
		Count(&n)
	return n, res.Error
}
