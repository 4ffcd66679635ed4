package decision

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("decision not found")
	// The approver already holds an APPROVED decision, or the target decision
	// is APPROVED; approved history is immutable.
	ErrTerminalState = errors.New("approver already approved; decision log is closed")
	// The owning proposal is not under review.
	ErrNotReviewable = errors.New("proposal is not under review")
	ErrBadStatus     = errors.New("decision status must be APPROVED or REJECTED")
)

type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ApproverStatus is derived from a decision history, never stored.
type ApproverStatus string

const (
	ApproverApproved     ApproverStatus = "APPROVED"
	ApproverRejected     ApproverStatus = "REJECTED"
	ApproverNotResponded ApproverStatus = "NOT_RESPONDED"
)

// Decision is an append-only log entry. Rows are never updated; a REJECTED
// decision may be soft-deleted, an APPROVED one never.
type Decision struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	DecisionID string `gorm:"column:decision_id;type:char(32);not null;uniqueIndex:ux_decisions_decision_id"`
	// FK to approvers.id (numeric)
	ApproverID uint64         `gorm:"column:approver_id;not null;index:idx_decisions_approver"`
	Content    string         `gorm:"column:content;type:text"`
	Status     Status         `gorm:"column:status;type:enum('APPROVED','REJECTED');not null"`
	DecidedAt  time.Time      `gorm:"column:decided_at;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
	DeletedBy  *string        `gorm:"column:deleted_by;type:char(32)"`
}

func (Decision) TableName() string { return "decisions" }

// Derive computes an approver's status from its (non-deleted) decision
// history: APPROVED if any decision approved (terminal), else REJECTED if the
// most recent decision rejected, else NOT_RESPONDED.
func Derive(history []Decision) ApproverStatus {
	var latest *Decision
	for i := range history {
		d := &history[i]
		if d.Status == StatusApproved {
			return ApproverApproved
		}
		if latest == nil || d.DecidedAt.After(latest.DecidedAt) ||
			(d.DecidedAt.Equal(latest.DecidedAt) && d.ID > latest.ID) {
			latest = d
		}
	}
	if latest != nil && latest.Status == StatusRejected {
		return ApproverRejected
	}
	return ApproverNotResponded
}
