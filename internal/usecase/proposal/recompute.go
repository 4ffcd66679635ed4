package proposal

import (
	"context"

	"vivim-backend/internal/domain/decision"
	domainProposal "vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"
)

// Recompute applies the aggregation rule against an already-locked proposal
// and saves it when the stored status drifted. Idempotent; the decision
// ledger calls it inside its own transaction after every decision mutation.
//
// Rules, in order:
//   - empty roster or never sent: force DRAFT (authoritative normalization)
//   - FINAL_APPROVED is terminal and never recomputed away
//   - every approver APPROVED: FINAL_APPROVED
//   - any approver REJECTED: FINAL_REJECTED
//   - otherwise: UNDER_REVIEW
func Recompute(ctx context.Context, r uow.Repos, p *domainProposal.Proposal) (bool, error) {
	if p.Status == domainProposal.StatusFinalApproved {
		return false, nil
	}
	roster, err := r.Approvers.ListByProposalID(ctx, p.ID)
	if err != nil {
		return false, err
	}
	next := p.Status
	if len(roster) == 0 || p.LastSentAt == nil {
		next = domainProposal.StatusDraft
	} else {
		byApprover, err := decisionsByApprover(ctx, r, roster)
		if err != nil {
			return false, err
		}
		allApproved := true
		anyRejected := false
		for i := range roster {
			switch decision.Derive(byApprover[roster[i].ID]) {
			case decision.ApproverApproved:
			case decision.ApproverRejected:
				allApproved = false
				anyRejected = true
			default:
				allApproved = false
			}
		}
		switch {
		case allApproved:
			next = domainProposal.StatusFinalApproved
		case anyRejected:
			next = domainProposal.StatusFinalRejected
		default:
			next = domainProposal.StatusUnderReview
		}
	}
	if next == p.Status {
		return false, nil
	}
	p.Status = next
	return true, r.Proposals.Save(ctx, p)
}
