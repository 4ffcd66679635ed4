package uow

import (
	"context"

	"vivim-backend/internal/domain/attachment"
	"vivim-backend/internal/domain/decision"
	"vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/stage"
)

type Repos struct {
	Projects    stage.ProjectRepository
	Stages      stage.Repository
	Proposals   proposal.Repository
	Approvers   proposal.ApproverRepository
	Decisions   decision.Repository
	Attachments attachment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the proposal row first, then pass it in
	WithinProposalTx(ctx context.Context, proposalID string, fn func(r Repos, p *proposal.Proposal) error) error
}
