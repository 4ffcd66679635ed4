package http

import (
	"net/http"

	"vivim-backend/internal/usecase/proposal"

	"github.com/labstack/echo/v4"
)

type ProposalHandler struct{ uc *proposal.Usecase }

func NewProposalHandler(uc *proposal.Usecase) *ProposalHandler { return &ProposalHandler{uc: uc} }

type createProposalReq struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

func (h *ProposalHandler) CreateProposal(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createProposalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), act, proposal.CreateProposalInput{
		StageID: c.Param("stage_id"),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProposalHandler) GetProposal(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("proposal_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type editProposalReq struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

func (h *ProposalHandler) EditProposal(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req editProposalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.EditContent(c.Request().Context(), act, c.Param("proposal_id"), proposal.EditContentInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProposalHandler) DeleteProposal(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), act, c.Param("proposal_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProposalHandler) SendProposal(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Send(c.Request().Context(), act, c.Param("proposal_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProposalHandler) ResendProposal(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Resend(c.Request().Context(), act, c.Param("proposal_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type replaceApproversReq struct {
	Approvers []approverEntry `json:"approvers" validate:"dive"`
}

type approverEntry struct {
	UserID      string `json:"user_id"      validate:"required,hex32"`
	DisplayName string `json:"display_name" validate:"max=100"`
	CompanyName string `json:"company_name" validate:"max=100"`
}

func (h *ProposalHandler) ReplaceApprovers(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req replaceApproversReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in := make([]proposal.ApproverInput, 0, len(req.Approvers))
	for _, a := range req.Approvers {
		in = append(in, proposal.ApproverInput(a))
	}
	out, err := h.uc.ReplaceApprovers(c.Request().Context(), act, c.Param("proposal_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalHandler) ListApprovers(c echo.Context) error {
	out, err := h.uc.ListApprovers(c.Request().Context(), c.Param("proposal_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalHandler) StatusSummary(c echo.Context) error {
	out, err := h.uc.StatusSummary(c.Request().Context(), c.Param("proposal_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
