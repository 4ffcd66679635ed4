package proposal

import (
	"context"
	"errors"
	"time"

	"vivim-backend/internal/domain/actor"
	"vivim-backend/internal/domain/attachment"
	"vivim-backend/internal/domain/event"
	domainProposal "vivim-backend/internal/domain/proposal"
	domainStage "vivim-backend/internal/domain/stage"
	"vivim-backend/internal/domain/uow"
	"vivim-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the proposal lifecycle controller. All mutations run inside the
// unit of work with the proposal row locked; reads go through the plain repos.
type Usecase struct {
	repos  uow.Repos
	uow    uow.UnitOfWork
	events event.Publisher
}

func NewUsecase(r uow.Repos, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{repos: r, uow: tx, events: pub}
}

// emit publishes collected events after the transaction committed, in commit
// order. Publish failures are the publisher's problem, never the caller's.
func (u *Usecase) emit(ctx context.Context, evs []event.Event) {
	for _, e := range evs {
		u.events.Publish(ctx, e)
	}
}

// projectPublicID resolves the public project id owning a stage, for event
// payloads.
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

func (u *Usecase) Create(ctx context.Context, act actor.Actor, in CreateProposalInput) (*ProposalDTO, error) {
	if act.Role != actor.RoleDeveloper && !act.IsAdmin() {
		return nil, actor.ErrForbidden
	}
	var (
		dto *ProposalDTO
		evs []event.Event
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		st, err := r.Stages.GetByStageID(ctx, in.StageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainStage.ErrNotFound
			}
			return err
		}
		p := &domainProposal.Proposal{
			ProposalID: id.NewID32(),
			StageID:    st.ID,
			Title:      in.Title,
			Content:    in.Content,
			Status:     domainProposal.StatusDraft,
			CreatorID:  act.ID,
		}
		if err := r.Proposals.Create(ctx, p); err != nil {
			return err
		}
		proj, err := r.Projects.GetByID(ctx, st.ProjectID)
		if err != nil {
			return err
		}
		dto = toProposalDTO(p, st.StageID, false)
		evs = append(evs, event.Event{
			Type:       event.TypeProposalCreated,
			EntityType: "proposal",
			EntityID:   p.ProposalID,
			ProjectID:  proj.ProjectID,
			ActorID:    act.ID,
			Timestamp:  time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, evs)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	p, err := u.repos.Proposals.GetByProposalID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProposal.ErrNotFound
		}
		return nil, err
	}
	st, err := u.repos.Stages.GetByID(ctx, p.StageID)
	if err != nil {
		return nil, err
	}
	n, err := u.repos.Attachments.CountByOwner(ctx, attachment.OwnerProposal, p.ID)
	if err != nil {
		return nil, err
	}
	return toProposalDTO(p, st.StageID, n > 0), nil
}

// Send freezes the roster and opens the review round. Only legal from DRAFT
// with at least one approver attached.
func (u *Usecase) Send(ctx context.Context, act actor.Actor, proposalID string) (*ProposalDTO, error) {
	var (
		dto *ProposalDTO
		evs []event.Event
	)
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if !act.Is(p.CreatorID) {
			return actor.ErrForbidden
		}
		switch p.Status {
		case domainProposal.StatusUnderReview, domainProposal.StatusFinalApproved:
			return domainProposal.ErrAlreadySent
		case domainProposal.StatusFinalRejected:
			// a rejected proposal reopens via Resend, not Send
			return domainProposal.ErrWrongState
		}
		roster, err := r.Approvers.ListByProposalID(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			return domainProposal.ErrEmptyRoster
		}
		return u.stampSent(ctx, act, r, p, &dto, &evs)
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, evs)
	return dto, nil
}

// Resend reopens review after a rejection, but only when the content actually
// changed since the last send. Prior decisions stay in the log as history.
func (u *Usecase) Resend(ctx context.Context, act actor.Actor, proposalID string) (*ProposalDTO, error) {
	var (
		dto *ProposalDTO
		evs []event.Event
	)
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if !act.Is(p.CreatorID) {
			return actor.ErrForbidden
		}
		if p.Status != domainProposal.StatusFinalRejected {
			return domainProposal.ErrWrongState
		}
		if !p.ChangedSinceSent() {
			return domainProposal.ErrNoChanges
		}
		return u.stampSent(ctx, act, r, p, &dto, &evs)
	})
	if err != nil {
		return nil, err
	}
	u.emit(ctx, evs)
	return dto, nil
}

// stampSent is the shared tail of Send and Resend: stamp last_sent_at, move
// to UNDER_REVIEW, queue the PROPOSAL_SENT event.
func (u *Usecase) stampSent(ctx context.Context, act actor.Actor, r uow.Repos, p *domainProposal.Proposal, dto **ProposalDTO, evs *[]event.Event) error {
	now := time.Now().UTC()
	p.LastSentAt = &now
	p.Status = domainProposal.StatusUnderReview
	if err := r.Proposals.Save(ctx, p); err != nil {
		return err
	}
	st, err := r.Stages.GetByID(ctx, p.StageID)
	if err != nil {
		return err
	}
	projID, err := projectPublicID(ctx, r, p.StageID)
	if err != nil {
		return err
	}
	n, err := r.Attachments.CountByOwner(ctx, attachment.OwnerProposal, p.ID)
	if err != nil {
		return err
	}
	*dto = toProposalDTO(p, st.StageID, n > 0)
	*evs = append(*evs, event.Event{
		Type:       event.TypeProposalSent,
		EntityType: "proposal",
		EntityID:   p.ProposalID,
		ProjectID:  projID,
		ActorID:    act.ID,
		Timestamp:  now,
	})
	return nil
}

// EditContent is permitted in any non-terminal state. It bumps updated_at and
// never changes status by itself.
func (u *Usecase) EditContent(ctx context.Context, act actor.Actor, proposalID string, in EditContentInput) (*ProposalDTO, error) {
	var (
		dto *ProposalDTO
		evs []event.Event
	)
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if !act.Is(p.CreatorID) {
			return actor.ErrForbidden
		}
		if p.Status == domainProposal.StatusFinalApproved {
			return domainProposal.ErrTerminalState
		}
		now := time.Now().UTC()
		p.Title = in.Title
		p.Content = in.Content
		p.ContentUpdatedAt = &now
		if err := r.Proposals.Save(ctx, p); err != nil {
			return err
		}
		st, err := r.Stages.GetByID(ctx, p.StageID)
		if err != nil {
			return err
		}
		projID, err := projectPublicID(ctx, r, p.StageID)
		if err != nil {
			return err
		}
		n, err := r.Attachments.CountByOwner(ctx, attachment.OwnerProposal, p.ID)
		if err != nil {
			return err
		}
		dto = toProposalDTO(p, st.StageID, n > 0)
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
	return dto, nil
}

func (u *Usecase) Delete(ctx context.Context, act actor.Actor, proposalID string) error {
	var evs []event.Event
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if !act.Is(p.CreatorID) {
			return actor.ErrForbidden
		}
		if p.Status == domainProposal.StatusFinalApproved {
			return domainProposal.ErrTerminalState
		}
		projID, err := projectPublicID(ctx, r, p.StageID)
		if err != nil {
			return err
		}
		if err := r.Proposals.SoftDelete(ctx, p, act.ID); err != nil {
			return err
		}
		evs = append(evs, event.Event{
			Type:       event.TypeProposalDeleted,
			EntityType: "proposal",
			EntityID:   p.ProposalID,
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

// RecomputeStatus re-applies the aggregation rule. The ledger calls the
// package-level Recompute inside its own transaction; this entry point exists
// for explicit re-normalization.
func (u *Usecase) RecomputeStatus(ctx context.Context, proposalID string) (string, error) {
	var status string
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if _, err := Recompute(ctx, r, p); err != nil {
			return err
		}
		status = string(p.Status)
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// StatusSummary returns total/approved/rejected/waiting approver counts.
func (u *Usecase) StatusSummary(ctx context.Context, proposalID string) (*StatusSummaryDTO, error) {
	p, err := u.repos.Proposals.GetByProposalID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProposal.ErrNotFound
		}
		return nil, err
	}
	statuses, err := rosterStatuses(ctx, u.repos, p.ID)
	if err != nil {
		return nil, err
	}
	out := &StatusSummaryDTO{Total: len(statuses)}
	for _, s := range statuses {
		switch s {
		case "APPROVED":
			out.Approved++
		case "REJECTED":
			out.Rejected++
		default:
			out.Waiting++
		}
	}
	return out, nil
}

func toProposalDTO(p *domainProposal.Proposal, stagePublicID string, hasAttachments bool) *ProposalDTO {
	return &ProposalDTO{
		ProposalID:     p.ProposalID,
		StageID:        stagePublicID,
		Title:          p.Title,
		Content:        p.Content,
		Status:         string(p.Status),
		CreatorID:      p.CreatorID,
		LastSentAt:     p.LastSentAt,
		HasAttachments: hasAttachments,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
