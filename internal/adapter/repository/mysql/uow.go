package mysql

import (
	"context"
	"errors"

	"vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// NewRepos binds the full repository bundle to one db handle; usecases use it
// for their non-transactional reads.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Projects:    NewProjectRepository(db),
		Stages:      NewStageRepository(db),
		Proposals:   NewProposalRepository(db),
		Approvers:   NewApproverRepository(db),
		Decisions:   NewDecisionRepository(db),
		Attachments: NewAttachmentRepository(db),
	}
}

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

func (u *GormUoW) WithinProposalTx(ctx context.Context, proposalID string, fn func(r uow.Repos, p *proposal.Proposal) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := NewRepos(tx)
		// lock the proposal row up-front to prevent races
		p, err := r.Proposals.GetByProposalIDForUpdate(ctx, proposalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return proposal.ErrNotFound
			}
			return err
		}
		return fn(r, p)
	})
}
