package decision

import "time"

type RecordDecisionInput struct {
	Content string `json:"content"`
	Status  string `json:"status"` // APPROVED | REJECTED
}

type DecisionDTO struct {
	DecisionID string    `json:"decision_id"`
	ApproverID string    `json:"approver_id"`
	ProposalID string    `json:"proposal_id"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	DecidedAt  time.Time `json:"decided_at"`
	// proposal status after aggregate recomputation
	ProposalStatus string `json:"proposal_status"`
}

type ApproverStatusDTO struct {
	ApproverID string        `json:"approver_id"`
	Status     string        `json:"status"`
	History    []DecisionDTO `json:"history"`
}
