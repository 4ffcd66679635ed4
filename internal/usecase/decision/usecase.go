package decision

import (
	"context"
	"errors"
	"time"

	"vivim-backend/internal/domain/actor"
	domainDecision "vivim-backend/internal/domain/decision"
	"vivim-backend/internal/domain/event"
	domainProposal "vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"
	usecaseProposal "vivim-backend/internal/usecase/proposal"
	"vivim-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the decision ledger: an append-only per-approver log. "At most
// one APPROVED decision per approver" is a cross-record invariant, so every
// write locks the owning proposal row and then the approver row before the
// check-then-append.
type Usecase struct {
	repos  uow.Repos
	uow    uow.UnitOfWork
	events event.Publisher
}

func NewUsecase(r uow.Repos, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{repos: r, uow: tx, events: pub}
}

func (u *Usecase) emit(ctx context.Context, evs []event.Event) {
	for _, e := range evs {
		u.events.Publish(ctx, e)
	}
}

// Record appends one decision for an approver and recomputes the owning
// proposal's aggregate status in the same transaction.
func (u *Usecase) Record(ctx context.Context, act actor.Actor, approverID string, in RecordDecisionInput) (*DecisionDTO, error) {
	status := domainDecision.Status(in.Status)
	if status != domainDecision.StatusApproved && status != domainDecision.StatusRejected {
		return nil, domainDecision.ErrBadStatus
	}
	var (
		dto *DecisionDTO
		evs []event.Event
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Approvers.GetByApproverID(ctx, approverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainProposal.ErrNotFound
			}
			return err
		}
		// lock order: proposal row first, then the approver row
		p, err := r.Proposals.GetByIDForUpdate(ctx, a.ProposalID)
		if err != nil {
			return err
		}
		if a, err = r.Approvers.GetByApproverIDForUpdate(ctx, approverID); err != nil {
			return err
		}
		if !act.Is(a.UserID) {
			return actor.ErrForbidden
		}
		if p.Status != domainProposal.StatusUnderReview {
			return domainDecision.ErrNotReviewable
		}
		history, err := r.Decisions.ListByApproverID(ctx, a.ID)
		if err != nil {
			return err
		}
		for i := range history {
			if history[i].Status == domainDecision.StatusApproved {
				return domainDecision.ErrTerminalState
			}
		}
		now := time.Now().UTC()
		d := &domainDecision.Decision{
			DecisionID: id.NewID32(),
			ApproverID: a.ID,
			Content:    in.Content,
			Status:     status,
			DecidedAt:  now,
		}
		if err := r.Decisions.Create(ctx, d); err != nil {
			return err
		}
		if _, err := usecaseProposal.Recompute(ctx, r, p); err != nil {
			return err
		}
		projID, err := projectPublicID(ctx, r, p.StageID)
		if err != nil {
			return err
		}
		dto = &DecisionDTO{
			DecisionID:     d.DecisionID,
			ApproverID:     a.ApproverID,
			ProposalID:     p.ProposalID,
			Content:        d.Content,
			Status:         string(d.Status),
			DecidedAt:      d.DecidedAt,
			ProposalStatus: string(p.Status),
		}
		evs = append(evs, event.Event{
			Type:       event.TypeDecisionCreated,
			EntityType: "decision",
			EntityID:   d.DecisionID,
			ProjectID:  projID,
			ActorID:    act.ID,
			Timestamp:  now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, evs)
	return dto, nil
}

// Delete retracts one REJECTED decision, reopening its approver to
// NOT_RESPONDED. Admin only. Approved history is immutable three ways: the
// decision itself, any decision of an approver whose derived status is
// APPROVED, and the whole ledger once the proposal is FINAL_APPROVED.
func (u *Usecase) Delete(ctx context.Context, act actor.Actor, decisionID string) error {
	if !act.IsAdmin() {
		return actor.ErrForbidden
	}
	var evs []event.Event
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Decisions.GetByDecisionID(ctx, decisionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainDecision.ErrNotFound
			}
			return err
		}
		if d.Status == domainDecision.StatusApproved {
			return domainDecision.ErrTerminalState
		}
		a, err := r.Approvers.GetByID(ctx, d.ApproverID)
		if err != nil {
			return err
		}
		p, err := r.Proposals.GetByIDForUpdate(ctx, a.ProposalID)
		if err != nil {
			return err
		}
		if p.Status == domainProposal.StatusFinalApproved {
			return domainDecision.ErrTerminalState
		}
		history, err := r.Decisions.ListByApproverID(ctx, a.ID)
		if err != nil {
			return err
		}
		if domainDecision.Derive(history) == domainDecision.ApproverApproved {
			return domainDecision.ErrTerminalState
		}
		if err := r.Decisions.SoftDelete(ctx, d, act.ID); err != nil {
			return err
		}
		if _, err := usecaseProposal.Recompute(ctx, r, p); err != nil {
			return err
		}
		projID, err := projectPublicID(ctx, r, p.StageID)
		if err != nil {
			return err
		}
		evs = append(evs, event.Event{
			Type:       event.TypeDecisionDeleted,
			EntityType: "decision",
			EntityID:   d.DecisionID,
			ProjectID:  projID,
			ActorID:    act.ID,
			Timestamp:  time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return err
	}
	u.emit(ctx, evs)
	return nil
}

// ApproverStatus is the pure derivation: no locks, no side effects.
func (u *Usecase) ApproverStatus(ctx context.Context, approverID string) (*ApproverStatusDTO, error) {
	a, err := u.repos.Approvers.GetByApproverID(ctx, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProposal.ErrNotFound
		}
		return nil, err
	}
	history, err := u.repos.Decisions.ListByApproverID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	out := &ApproverStatusDTO{
		ApproverID: a.ApproverID,
		Status:     string(domainDecision.Derive(history)),
		History:    make([]DecisionDTO, 0, len(history)),
	}
	for i := range history {
		d := &history[i]
		out.History = append(out.History, DecisionDTO{
			DecisionID: d.DecisionID,
			ApproverID: a.ApproverID,
			Content:    d.Content,
			Status:     string(d.Status),
			DecidedAt:  d.DecidedAt,
		})
	}
	return out, nil
}

func projectPublicID(ctx context.Context, r uow.Repos, stageNumID uint64) (string, error) {
	st, err := r.Stages.GetByID(ctx, stageNumID)
	if err != nil {
		return "", err
	}
	proj, err := r.Projects.GetByID(ctx, st.ProjectID)
	if err != nil {
		return "", err
	}
	return proj.ProjectID, nil
}
