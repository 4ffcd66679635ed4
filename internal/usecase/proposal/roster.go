package proposal

import (
	"context"
	"errors"
	"time"

	"vivim-backend/internal/domain/actor"
	"vivim-backend/internal/domain/decision"
	"vivim-backend/internal/domain/event"
	domainProposal "vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"
	"vivim-backend/pkg/id"

	"gorm.io/gorm"
)

// ReplaceApprovers diffs the roster against the requested set. Legal only in
// DRAFT; removing an approver that already holds decisions rejects the whole
// operation, nothing is partially applied.
func (u *Usecase) ReplaceApprovers(ctx context.Context, act actor.Actor, proposalID string, in []ApproverInput) ([]ApproverDTO, error) {
	var (
		out []ApproverDTO
		evs []event.Event
	)
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if !act.Is(p.CreatorID) {
			return actor.ErrForbidden
		}
		if p.Status != domainProposal.StatusDraft {
			return domainProposal.ErrImmutableRoster
		}
		current, err := r.Approvers.ListByProposalID(ctx, p.ID)
		if err != nil {
			return err
		}
		want := make(map[string]ApproverInput, len(in))
		for _, a := range in {
			want[a.UserID] = a
		}
		kept := make(map[string]bool, len(current))
		for i := range current {
			a := &current[i]
			if _, ok := want[a.UserID]; ok {
				kept[a.UserID] = true
				continue
			}
			n, err := r.Decisions.CountByApproverID(ctx, a.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return domainProposal.ErrApproverHasDecisions
			}
			if err := r.Approvers.Delete(ctx, a); err != nil {
				return err
			}
		}
		// additions keep request order; join order is creation order
		for _, a := range in {
			if kept[a.UserID] {
				continue
			}
			if err := r.Approvers.Create(ctx, &domainProposal.Approver{
				ApproverID:  id.NewID32(),
				ProposalID:  p.ID,
				UserID:      a.UserID,
				DisplayName: a.DisplayName,
				CompanyName: a.CompanyName,
			}); err != nil {
				return err
			}
		}
		roster, err := r.Approvers.ListByProposalID(ctx, p.ID)
		if err != nil {
			return err
		}
		out = make([]ApproverDTO, 0, len(roster))
		for i := range roster {
			out = append(out, ApproverDTO{
				ApproverID:  roster[i].ApproverID,
				UserID:      roster[i].UserID,
				DisplayName: roster[i].DisplayName,
				CompanyName: roster[i].CompanyName,
				Status:      string(decision.ApproverNotResponded),
				Decisions:   []DecisionDTO{},
			})
		}
		projID, err := projectPublicID(ctx, r, p.StageID)
		if err != nil {
			return err
		}
		evs = append(evs, event.Event{
			Type:       event.TypeProposalModified,
			EntityType: "proposal",
			EntityID:   p.ProposalID,
			ProjectID:  projID,
			ActorID:    act.ID,
			Timestamp:  time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, evs)
	return out, nil
}

// ListApprovers returns the roster in join order, each entry with derived
// status and full decision history.
func (u *Usecase) ListApprovers(ctx context.Context, proposalID string) ([]ApproverDTO, error) {
	p, err := u.repos.Proposals.GetByProposalID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProposal.ErrNotFound
		}
		return nil, err
	}
	roster, err := u.repos.Approvers.ListByProposalID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	byApprover, err := decisionsByApprover(ctx, u.repos, roster)
	if err != nil {
		return nil, err
	}
	out := make([]ApproverDTO, 0, len(roster))
	for i := range roster {
		a := &roster[i]
		history := byApprover[a.ID]
		dtos := make([]DecisionDTO, 0, len(history))
		for _, d := range history {
			dtos = append(dtos, DecisionDTO{
				DecisionID: d.DecisionID,
				Content:    d.Content,
				Status:     string(d.Status),
				DecidedAt:  d.DecidedAt,
			})
		}
		out = append(out, ApproverDTO{
			ApproverID:  a.ApproverID,
			UserID:      a.UserID,
			DisplayName: a.DisplayName,
			CompanyName: a.CompanyName,
			Status:      string(decision.Derive(history)),
			Decisions:   dtos,
		})
	}
	return out, nil
}

func decisionsByApprover(ctx context.Context, r uow.Repos, roster []domainProposal.Approver) (map[uint64][]decision.Decision, error) {
	ids := make([]uint64, 0, len(roster))
	for i := range roster {
		ids = append(ids, roster[i].ID)
	}
	all, err := r.Decisions.ListByApproverIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byApprover := make(map[uint64][]decision.Decision, len(roster))
	for _, d := range all {
		byApprover[d.ApproverID] = append(byApprover[d.ApproverID], d)
	}
	return byApprover, nil
}

// rosterStatuses derives every approver's status for one proposal.
func rosterStatuses(ctx context.Context, r uow.Repos, proposalNumID uint64) ([]string, error) {
	roster, err := r.Approvers.ListByProposalID(ctx, proposalNumID)
	if err != nil {
		return nil, err
	}
	byApprover, err := decisionsByApprover(ctx, r, roster)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(roster))
	for i := range roster {
		out = append(out, string(decision.Derive(byApprover[roster[i].ID])))
	}
	return out, nil
}
