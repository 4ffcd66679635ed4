package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	domainProposal "vivim-backend/internal/domain/proposal"
	domainStage "vivim-backend/internal/domain/stage"
	"vivim-backend/internal/domain/uow"
	"vivim-backend/internal/testutil/attachmentmock"
	"vivim-backend/internal/testutil/decisionmock"
	"vivim-backend/internal/testutil/notifymock"
	"vivim-backend/internal/testutil/proposalmock"
	"vivim-backend/internal/testutil/stagemock"
	"vivim-backend/internal/testutil/uowmock"
	usecaseProposal "vivim-backend/internal/usecase/proposal"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var (
	testCreator    = strings.Repeat("c", 32)
	testProposalID = strings.Repeat("a", 32)
	testStageID    = strings.Repeat("5", 32)
)

func devHeaders() map[string]string {
	return map[string]string{"Ax-Actor-Id": testCreator, "Ax-Actor-Role": "developer"}
}

// proposalFixtureRepos backs the handler with one proposal in the given state.
func proposalFixtureRepos(p *domainProposal.Proposal) uow.Repos {
	return uow.Repos{
		Projects: &stagemock.ProjectRepo{
			GetByIDFn: func(ctx context.Context, id uint64) (*domainStage.Project, error) {
				return &domainStage.Project{ID: id, ProjectID: strings.Repeat("9", 32)}, nil
			},
		},
		Stages: &stagemock.StageRepo{
			GetByStageIDFn: func(ctx context.Context, stageID string) (*domainStage.Stage, error) {
				if stageID == testStageID {
					return &domainStage.Stage{ID: 9, StageID: stageID, ProjectID: 1, Position: 1}, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			GetByIDFn: func(ctx context.Context, id uint64) (*domainStage.Stage, error) {
				return &domainStage.Stage{ID: id, StageID: testStageID, ProjectID: 1, Position: 1}, nil
			},
		},
		Proposals: &proposalmock.Repo{
			CreateFn: func(ctx context.Context, created *domainProposal.Proposal) error {
				created.ID = 77
				return nil
			},
			GetByProposalIDFn: func(ctx context.Context, proposalID string) (*domainProposal.Proposal, error) {
				if p != nil && proposalID == p.ProposalID {
					return p, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			GetByProposalIDForUpdateFn: func(ctx context.Context, proposalID string) (*domainProposal.Proposal, error) {
				if p != nil && proposalID == p.ProposalID {
					return p, nil
				}
				return nil, domainProposal.ErrNotFound
			},
		},
		Approvers:   &proposalmock.ApproverRepo{},
		Decisions:   &decisionmock.Repo{},
		Attachments: &attachmentmock.Repo{},
	}
}

func newProposalHandler(p *domainProposal.Proposal) *ProposalHandler {
	r := proposalFixtureRepos(p)
	uc := usecaseProposal.NewUsecase(r, uowmock.Passthrough(r), notifymock.New())
	return NewProposalHandler(uc)
}

func TestCreateProposal_Created(t *testing.T) {
	h := newProposalHandler(nil)
	c, rec := newTestCtx(http.MethodPost, "/stages/"+testStageID+"/proposals",
		`{"title":"wireframes","content":"first pass"}`, devHeaders())
	c.SetParamNames("stage_id")
	c.SetParamValues(testStageID)

	if err := h.CreateProposal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var body usecaseProposal.ProposalDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != string(domainProposal.StatusDraft) || body.StageID != testStageID {
		t.Fatalf("body = %+v", body)
	}
}

func TestCreateProposal_MissingIdentity(t *testing.T) {
	h := newProposalHandler(nil)
	c, _ := newTestCtx(http.MethodPost, "/stages/"+testStageID+"/proposals",
		`{"title":"x","content":"y"}`, nil)
	c.SetParamNames("stage_id")
	c.SetParamValues(testStageID)

	err := h.CreateProposal(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 HTTPError", err)
	}
}

func TestCreateProposal_ValidationFailure(t *testing.T) {
	h := newProposalHandler(nil)
	c, rec := newTestCtx(http.MethodPost, "/stages/"+testStageID+"/proposals",
		`{"title":"","content":""}`, devHeaders())
	c.SetParamNames("stage_id")
	c.SetParamValues(testStageID)

	if err := h.CreateProposal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !containsFieldMsg(body.Details, "Title", "required") {
		t.Fatalf("details = %v, want required on Title", body.Details)
	}
}

func TestGetProposal_NotFound(t *testing.T) {
	h := newProposalHandler(nil)
	c, rec := newTestCtx(http.MethodGet, "/proposals/"+testProposalID, "", nil)
	c.SetParamNames("proposal_id")
	c.SetParamValues(testProposalID)

	if err := h.GetProposal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSendProposal_EmptyRoster(t *testing.T) {
	h := newProposalHandler(&domainProposal.Proposal{
		ID: 77, ProposalID: testProposalID, StageID: 9,
		Status: domainProposal.StatusDraft, CreatorID: testCreator,
	})
	c, rec := newTestCtx(http.MethodPost, "/proposals/"+testProposalID+"/send", "", devHeaders())
	c.SetParamNames("proposal_id")
	c.SetParamValues(testProposalID)

	if err := h.SendProposal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestSendProposal_AlreadySentConflict(t *testing.T) {
	sent := time.Now().UTC()
	h := newProposalHandler(&domainProposal.Proposal{
		ID: 77, ProposalID: testProposalID, StageID: 9,
		Status: domainProposal.StatusUnderReview, CreatorID: testCreator, LastSentAt: &sent,
	})
	c, rec := newTestCtx(http.MethodPost, "/proposals/"+testProposalID+"/send", "", devHeaders())
	c.SetParamNames("proposal_id")
	c.SetParamValues(testProposalID)

	if err := h.SendProposal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}

func TestSendProposal_ForbiddenForStranger(t *testing.T) {
	h := newProposalHandler(&domainProposal.Proposal{
		ID: 77, ProposalID: testProposalID, StageID: 9,
		Status: domainProposal.StatusDraft, CreatorID: strings.Repeat("e", 32),
	})
	c, rec := newTestCtx(http.MethodPost, "/proposals/"+testProposalID+"/send", "", devHeaders())
	c.SetParamNames("proposal_id")
	c.SetParamValues(testProposalID)

	if err := h.SendProposal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestReplaceApprovers_RejectsBadUserID(t *testing.T) {
	h := newProposalHandler(&domainProposal.Proposal{
		ID: 77, ProposalID: testProposalID, StageID: 9,
		Status: domainProposal.StatusDraft, CreatorID: testCreator,
	})
	c, rec := newTestCtx(http.MethodPut, "/proposals/"+testProposalID+"/approvers",
		`{"approvers":[{"user_id":"not-hex"}]}`, devHeaders())
	c.SetParamNames("proposal_id")
	c.SetParamValues(testProposalID)

	if err := h.ReplaceApprovers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestReplaceApprovers_ConflictOnceSent(t *testing.T) {
	sent := time.Now().UTC()
	h := newProposalHandler(&domainProposal.Proposal{
		ID: 77, ProposalID: testProposalID, StageID: 9,
		Status: domainProposal.StatusUnderReview, CreatorID: testCreator, LastSentAt: &sent,
	})
	c, rec := newTestCtx(http.MethodPut, "/proposals/"+testProposalID+"/approvers",
		`{"approvers":[{"user_id":"`+strings.Repeat("d", 32)+`"}]}`, devHeaders())
	c.SetParamNames("proposal_id")
	c.SetParamValues(testProposalID)

	if err := h.ReplaceApprovers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}
