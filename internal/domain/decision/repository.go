package decision

import "context"

type Repository interface {
	Create(ctx context.Context, d *Decision) error
	GetByDecisionID(ctx context.Context, decisionID string) (*Decision, error)
	// Non-deleted history of one approver, oldest first.
	ListByApproverID(ctx context.Context, approverID uint64) ([]Decision, error)
	// Batch variant for aggregate recomputation across a roster.
	ListByApproverIDs(ctx context.Context, approverIDs []uint64) ([]Decision, error)
	CountByApproverID(ctx context.Context, approverID uint64) (int64, error)
	SoftDelete(ctx context.Context, d *Decision, deletedBy string) error
}
