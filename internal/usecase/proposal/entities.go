package proposal

import "time"

type CreateProposalInput struct {
	StageID string `json:"stage_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type EditContentInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// One roster entry for ReplaceApprovers. Display fields are denormalized
// snapshots, not authoritative identity data.
type ApproverInput struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	CompanyName string `json:"company_name"`
}

type ProposalDTO struct {
	ProposalID     string     `json:"proposal_id"`
	StageID        string     `json:"stage_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Status         string     `json:"status"`
	CreatorID      string     `json:"creator_id"`
	LastSentAt     *time.Time `json:"last_sent_at,omitempty"`
	HasAttachments bool       `json:"has_attachments"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type DecisionDTO struct {
	DecisionID string    `json:"decision_id"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	DecidedAt  time.Time `json:"decided_at"`
}

type ApproverDTO struct {
	ApproverID  string        `json:"approver_id"`
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	CompanyName string        `json:"company_name"`
	Status      string        `json:"status"` // derived, never stored
	Decisions   []DecisionDTO `json:"decisions"`
}

type StatusSummaryDTO struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Waiting  int `json:"waiting"`
}
