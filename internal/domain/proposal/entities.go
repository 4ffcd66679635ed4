package proposal

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("proposal not found")
	// State-violation errors: the operation is structurally illegal right now.
	ErrTerminalState   = errors.New("proposal is final-approved and immutable")
	ErrWrongState      = errors.New("operation not allowed in current proposal state")
	ErrAlreadySent     = errors.New("proposal has already been sent")
	ErrImmutableRoster = errors.New("approver roster is frozen once the proposal is sent")
	// Precondition errors: legal in principle, a guard failed.
	ErrEmptyRoster          = errors.New("proposal has no approvers attached")
	ErrNoChanges            = errors.New("proposal content unchanged since last send")
	ErrApproverHasDecisions = errors.New("approver with recorded decisions cannot be removed")
)

type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusUnderReview   Status = "UNDER_REVIEW"
	StatusFinalApproved Status = "FINAL_APPROVED"
	StatusFinalRejected Status = "FINAL_REJECTED"
)

// Proposal is a unit of work submitted for multi-party approval, scoped to
// one project stage. Status only moves via send/resend or decision
// aggregation; FINAL_APPROVED is terminal.
type Proposal struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ProposalID string `gorm:"column:proposal_id;type:char(32);not null;uniqueIndex:ux_proposals_proposal_id_active"`
	// FK to stages.id (numeric)
	StageID   uint64 `gorm:"column:stage_id;not null;index:idx_proposals_stage_active"`
	Title     string `gorm:"column:title;size:255;not null"`
	Content   string `gorm:"column:content;type:text;not null"`
	Status    Status `gorm:"column:status;type:enum('DRAFT','UNDER_REVIEW','FINAL_APPROVED','FINAL_REJECTED');default:'DRAFT'"`
	CreatorID string `gorm:"column:creator_id;type:char(32);not null"`
	LastSentAt *time.Time `gorm:"column:last_sent_at"`
	// Stamped only by content edits, never by status bookkeeping. UpdatedAt
	// cannot serve here: gorm bumps it on every save, including recompute.
	ContentUpdatedAt *time.Time     `gorm:"column:content_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
	DeletedBy        *string        `gorm:"column:deleted_by;type:char(32)"`
}

func (Proposal) TableName() string { return "proposals" }

// ChangedSinceSent reports whether content was edited after the last send.
func (p *Proposal) ChangedSinceSent() bool {
	return p.LastSentAt != nil && p.ContentUpdatedAt != nil && p.ContentUpdatedAt.After(*p.LastSentAt)
}

// Approver is a user registered against a proposal. Its status is never
// stored; it is derived from the decision log (see domain/decision).
type Approver struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ApproverID string `gorm:"column:approver_id;type:char(32);not null;uniqueIndex:ux_approvers_approver_id"`
	// FK to proposals.id (numeric)
	ProposalID uint64 `gorm:"column:proposal_id;not null;index:idx_approvers_proposal;uniqueIndex:ux_approvers_proposal_user"`
	UserID     string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_approvers_proposal_user"`
	// Denormalized for display, not authoritative.
	DisplayName string    `gorm:"column:display_name;size:100"`
	CompanyName string    `gorm:"column:company_name;size:100"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Approver) TableName() string { return "approvers" }
