package attachment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vivim-backend/internal/domain/actor"
	domainAttachment "vivim-backend/internal/domain/attachment"
	domainDecision "vivim-backend/internal/domain/decision"
	domainProposal "vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/uow"
	"vivim-backend/internal/testutil/attachmentmock"
	"vivim-backend/internal/testutil/decisionmock"
	"vivim-backend/internal/testutil/proposalmock"
	"vivim-backend/internal/testutil/stagemock"
	"vivim-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

var (
	creatorID  = strings.Repeat("c", 32)
	reviewerID = strings.Repeat("d", 32)
)

type fixture struct {
	p       *domainProposal.Proposal
	refs    []domainAttachment.Ref
	deleted []string
	repos   uow.Repos
}

func newFixture(status domainProposal.Status) *fixture {
	f := &fixture{
		p: &domainProposal.Proposal{
			ID:         77,
			ProposalID: strings.Repeat("a", 32),
			StageID:    9,
			Status:     status,
			CreatorID:  creatorID,
		},
	}
	f.repos = uow.Repos{
		Projects: &stagemock.ProjectRepo{},
		Stages:   &stagemock.StageRepo{},
		Proposals: &proposalmock.Repo{
			GetByProposalIDFn: func(ctx context.Context, proposalID string) (*domainProposal.Proposal, error) {
				if proposalID == f.p.ProposalID {
					return f.p, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			GetByProposalIDForUpdateFn: func(ctx context.Context, proposalID string) (*domainProposal.Proposal, error) {
				if proposalID == f.p.ProposalID {
					return f.p, nil
				}
				return nil, domainProposal.ErrNotFound
			},
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domainProposal.Proposal, error) {
				if id == f.p.ID {
					return f.p, nil
				}
				return nil, domainProposal.ErrNotFound
			},
		},
		Approvers: &proposalmock.ApproverRepo{
			GetByIDFn: func(ctx context.Context, id uint64) (*domainProposal.Approver, error) {
				return &domainProposal.Approver{ID: id, ProposalID: 77, UserID: reviewerID}, nil
			},
		},
		Decisions: &decisionmock.Repo{
			GetByDecisionIDFn: func(ctx context.Context, decisionID string) (*domainDecision.Decision, error) {
				if decisionID == strings.Repeat("2", 32) {
					return &domainDecision.Decision{ID: 5, DecisionID: decisionID, ApproverID: 1}, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		},
		Attachments: &attachmentmock.Repo{
			CreateFn: func(ctx context.Context, r *domainAttachment.Ref) error {
				r.ID = uint64(len(f.refs) + 1)
				f.refs = append(f.refs, *r)
				return nil
			},
			GetByAttachmentIDFn: func(ctx context.Context, attachmentID string) (*domainAttachment.Ref, error) {
				for i := range f.refs {
					if f.refs[i].AttachmentID == attachmentID {
						r := f.refs[i]
						return &r, nil
					}
				}
				return nil, gorm.ErrRecordNotFound
			},
			ListByOwnerFn: func(ctx context.Context, ownerType domainAttachment.OwnerType, ownerID uint64) ([]domainAttachment.Ref, error) {
				var out []domainAttachment.Ref
				for i := range f.refs {
					if f.refs[i].OwnerType == ownerType && f.refs[i].OwnerID == ownerID {
						out = append(out, f.refs[i])
					}
				}
				return out, nil
			},
			SoftDeleteFn: func(ctx context.Context, r *domainAttachment.Ref, deletedBy string) error {
				f.deleted = append(f.deleted, r.AttachmentID)
				return nil
			},
		},
	}
	return f
}

func (f *fixture) usecase() *Usecase {
	return NewUsecase(f.repos, uowmock.Passthrough(f.repos))
}

func TestUsecase_AddProposalRef(t *testing.T) {
	tests := []struct {
		name    string
		status  domainProposal.Status
		act     actor.Actor
		in      AddRefInput
		wantErr error
	}{
		{
			name:   "creator attaches a file",
			status: domainProposal.StatusDraft,
			act:    actor.Actor{ID: creatorID, Role: actor.RoleDeveloper},
			in:     AddRefInput{Kind: "file", Name: "mockup.png", URI: "s3://bucket/mockup.png"},
		},
		{
			name:   "link kind",
			status: domainProposal.StatusUnderReview,
			act:    actor.Actor{ID: creatorID, Role: actor.RoleDeveloper},
			in:     AddRefInput{Kind: "link", Name: "figma", URI: "https://figma.com/f/1"},
		},
		{
			name:    "unknown kind",
			status:  domainProposal.StatusDraft,
			act:     actor.Actor{ID: creatorID, Role: actor.RoleDeveloper},
			in:      AddRefInput{Kind: "blob", Name: "x", URI: "y"},
			wantErr: domainAttachment.ErrBadKind,
		},
		{
			name:    "frozen once final approved",
			status:  domainProposal.StatusFinalApproved,
			act:     actor.Actor{ID: creatorID, Role: actor.RoleDeveloper},
			in:      AddRefInput{Kind: "file", Name: "x", URI: "y"},
			wantErr: domainProposal.ErrTerminalState,
		},
		{
			name:    "strangers cannot attach",
			status:  domainProposal.StatusDraft,
			act:     actor.Actor{ID: reviewerID, Role: actor.RoleCustomer},
			in:      AddRefInput{Kind: "file", Name: "x", URI: "y"},
			wantErr: actor.ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.status)
			dto, err := f.usecase().AddProposalRef(context.Background(), tt.act, f.p.ProposalID, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddProposalRef err = %v, want %v", err, tt.wantErr)
				}
				if len(f.refs) != 0 {
					t.Fatal("ref stored despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("AddProposalRef: %v", err)
			}
			if dto.Kind != tt.in.Kind || dto.OwnerType != string(domainAttachment.OwnerProposal) {
				t.Fatalf("dto = %+v", dto)
			}
			if dto.OwnerID != f.p.ProposalID {
				t.Fatalf("owner id = %s, want proposal public id", dto.OwnerID)
			}
		})
	}
}

func TestUsecase_AddDecisionRef(t *testing.T) {
	decisionID := strings.Repeat("2", 32)

	t.Run("deciding user attaches", func(t *testing.T) {
		f := newFixture(domainProposal.StatusUnderReview)
		dto, err := f.usecase().AddDecisionRef(context.Background(), actor.Actor{ID: reviewerID, Role: actor.RoleCustomer}, decisionID, AddRefInput{Kind: "link", Name: "notes", URI: "https://e.x/n"})
		if err != nil {
			t.Fatalf("AddDecisionRef: %v", err)
		}
		if dto.OwnerType != string(domainAttachment.OwnerDecision) || dto.OwnerID != decisionID {
			t.Fatalf("dto = %+v", dto)
		}
	})

	t.Run("someone else is rejected", func(t *testing.T) {
		f := newFixture(domainProposal.StatusUnderReview)
		_, err := f.usecase().AddDecisionRef(context.Background(), actor.Actor{ID: creatorID, Role: actor.RoleDeveloper}, decisionID, AddRefInput{Kind: "link", Name: "n", URI: "u"})
		if !errors.Is(err, actor.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		f := newFixture(domainProposal.StatusUnderReview)
		_, err := f.usecase().AddDecisionRef(context.Background(), actor.Actor{ID: reviewerID, Role: actor.RoleCustomer}, strings.Repeat("b", 32), AddRefInput{Kind: "link", Name: "n", URI: "u"})
		if !errors.Is(err, domainDecision.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestUsecase_RemoveRef(t *testing.T) {
	seed := func(f *fixture, owner domainAttachment.OwnerType) string {
		ref := domainAttachment.Ref{ID: 1, AttachmentID: strings.Repeat("f", 32), OwnerType: owner, OwnerID: 77, Kind: domainAttachment.KindFile}
		if owner == domainAttachment.OwnerDecision {
			ref.OwnerID = 5
		}
		f.refs = append(f.refs, ref)
		return ref.AttachmentID
	}

	t.Run("creator removes own proposal ref", func(t *testing.T) {
		f := newFixture(domainProposal.StatusDraft)
		id := seed(f, domainAttachment.OwnerProposal)
		if err := f.usecase().RemoveRef(context.Background(), actor.Actor{ID: creatorID, Role: actor.RoleDeveloper}, id); err != nil {
			t.Fatalf("RemoveRef: %v", err)
		}
		if len(f.deleted) != 1 {
			t.Fatal("ref not deleted")
		}
	})

	t.Run("final approved freezes proposal refs", func(t *testing.T) {
		f := newFixture(domainProposal.StatusFinalApproved)
		id := seed(f, domainAttachment.OwnerProposal)
		err := f.usecase().RemoveRef(context.Background(), actor.Actor{ID: creatorID, Role: actor.RoleDeveloper}, id)
		if !errors.Is(err, domainProposal.ErrTerminalState) {
			t.Fatalf("err = %v, want ErrTerminalState", err)
		}
	})

	t.Run("decision refs need admin", func(t *testing.T) {
		f := newFixture(domainProposal.StatusUnderReview)
		id := seed(f, domainAttachment.OwnerDecision)
		err := f.usecase().RemoveRef(context.Background(), actor.Actor{ID: reviewerID, Role: actor.RoleCustomer}, id)
		if !errors.Is(err, actor.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
		if err := f.usecase().RemoveRef(context.Background(), actor.Actor{ID: strings.Repeat("0", 32), Role: actor.RoleAdmin}, id); err != nil {
			t.Fatalf("admin RemoveRef: %v", err)
		}
	})
}

func TestUsecase_ListProposalRefs(t *testing.T) {
	f := newFixture(domainProposal.StatusDraft)
	f.refs = []domainAttachment.Ref{
		{ID: 1, AttachmentID: strings.Repeat("1", 32), OwnerType: domainAttachment.OwnerProposal, OwnerID: 77, Kind: domainAttachment.KindFile, Name: "a"},
		{ID: 2, AttachmentID: strings.Repeat("2", 32), OwnerType: domainAttachment.OwnerDecision, OwnerID: 5, Kind: domainAttachment.KindLink, Name: "b"},
	}
	out, err := f.usecase().ListProposalRefs(context.Background(), f.p.ProposalID)
	if err != nil {
		t.Fatalf("ListProposalRefs: %v", err)
	}
	if len(out) != 1 || out[0].Name != "a" {
		t.Fatalf("refs = %+v, want only the proposal-owned one", out)
	}
}
