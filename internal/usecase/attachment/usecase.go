package attachment

import (
	"context"
	"errors"
	"time"

	"vivim-backend/internal/domain/actor"
	domainAttachment "vivim-backend/internal/domain/attachment"
	domainDecision "vivim-backend/internal/domain/decision"
	domainProposal "vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"
	"vivim-backend/pkg/id"

	"gorm.io/gorm"
)

type AddRefInput struct {
	Kind string `json:"kind"` // file | link
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type RefDTO struct {
	AttachmentID string    `json:"attachment_id"`
	OwnerType    string    `json:"owner_type"`
	OwnerID      string    `json:"owner_id"` // public id of the owner
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	URI          string    `json:"uri"`
	CreatedAt    time.Time `json:"created_at"`
}

// Usecase stores opaque references into the external attachment store. The
// engine never inspects attachment content; it only keys refs by owner. A
// final-approved proposal's attachments are frozen with the rest of it.
type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
}

func NewUsecase(r uow.Repos, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repos: r, uow: tx}
}

func (u *Usecase) AddProposalRef(ctx context.Context, act actor.Actor, proposalID string, in AddRefInput) (*RefDTO, error) {
	var dto *RefDTO
	err := u.uow.WithinProposalTx(ctx, proposalID, func(r uow.Repos, p *domainProposal.Proposal) error {
		if !act.Is(p.CreatorID) {
			return actor.ErrForbidden
		}
		if p.Status == domainProposal.StatusFinalApproved {
			return domainProposal.ErrTerminalState
		}
		ref, err := createRef(ctx, r, domainAttachment.OwnerProposal, p.ID, in)
		if err != nil {
			return err
		}
		dto = toRefDTO(ref, proposalID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) AddDecisionRef(ctx context.Context, act actor.Actor, decisionID string, in AddRefInput) (*RefDTO, error) {
	var dto *RefDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Decisions.GetByDecisionID(ctx, decisionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainDecision.ErrNotFound
			}
			return err
		}
		a, err := r.Approvers.GetByID(ctx, d.ApproverID)
		if err != nil {
			return err
		}
		if !act.Is(a.UserID) {
			return actor.ErrForbidden
		}
		ref, err := createRef(ctx, r, domainAttachment.OwnerDecision, d.ID, in)
		if err != nil {
			return err
		}
		dto = toRefDTO(ref, decisionID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) RemoveRef(ctx context.Context, act actor.Actor, attachmentID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ref, err := r.Attachments.GetByAttachmentID(ctx, attachmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainAttachment.ErrNotFound
			}
			return err
		}
		if ref.OwnerType == domainAttachment.OwnerProposal {
			p, err := r.Proposals.GetByIDForUpdate(ctx, ref.OwnerID)
			if err != nil {
				return err
			}
			if !act.Is(p.CreatorID) {
				return actor.ErrForbidden
			}
			if p.Status == domainProposal.StatusFinalApproved {
				return domainProposal.ErrTerminalState
			}
		} else if !act.IsAdmin() {
			return actor.ErrForbidden
		}
		return r.Attachments.SoftDelete(ctx, ref, act.ID)
	})
}

func (u *Usecase) ListProposalRefs(ctx context.Context, proposalID string) ([]RefDTO, error) {
	p, err := u.repos.Proposals.GetByProposalID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProposal.ErrNotFound
		}
		return nil, err
	}
	refs, err := u.repos.Attachments.ListByOwner(ctx, domainAttachment.OwnerProposal, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]RefDTO, 0, len(refs))
	for i := range refs {
		out = append(out, *toRefDTO(&refs[i], proposalID))
	}
	return out, nil
}

func createRef(ctx context.Context, r uow.Repos, owner domainAttachment.OwnerType, ownerID uint64, in AddRefInput) (*domainAttachment.Ref, error) {
	kind := domainAttachment.Kind(in.Kind)
	if kind != domainAttachment.KindFile && kind != domainAttachment.KindLink {
		return nil, domainAttachment.ErrBadKind
	}
	ref := &domainAttachment.Ref{
		AttachmentID: id.NewID32(),
		OwnerType:    owner,
		OwnerID:      ownerID,
		Kind:         kind,
		Name:         in.Name,
		URI:          in.URI,
	}
	if err := r.Attachments.Create(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func toRefDTO(ref *domainAttachment.Ref, ownerPublicID string) *RefDTO {
	return &RefDTO{
		AttachmentID: ref.AttachmentID,
		OwnerType:    string(ref.OwnerType),
		OwnerID:      ownerPublicID,
		Kind:         string(ref.Kind),
		Name:         ref.Name,
		URI:          ref.URI,
		CreatedAt:    ref.CreatedAt,
	}
}
