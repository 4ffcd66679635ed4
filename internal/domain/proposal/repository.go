package proposal

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	GetByProposalID(ctx context.Context, proposalID string) (*Proposal, error)
	// Same lookup with a FOR UPDATE row lock; call inside a transaction.
	GetByProposalIDForUpdate(ctx context.Context, proposalID string) (*Proposal, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Proposal, error)
	Save(ctx context.Context, p *Proposal) error
	SoftDelete(ctx context.Context, p *Proposal, deletedBy string) error
	// Non-deleted proposals of a stage, by numeric stage id.
	ListByStageID(ctx context.Context, stageID uint64) ([]Proposal, error)
	CountByStageID(ctx context.Context, stageID uint64) (int64, error)
}

type ApproverRepository interface {
	Create(ctx context.Context, a *Approver) error
	GetByApproverID(ctx context.Context, approverID string) (*Approver, error)
	GetByApproverIDForUpdate(ctx context.Context, approverID string) (*Approver, error)
	GetByID(ctx context.Context, id uint64) (*Approver, error)
	// Roster in join order (created_at, then id).
	ListByProposalID(ctx context.Context, proposalID uint64) ([]Approver, error)
	Delete(ctx context.Context, a *Approver) error
}
