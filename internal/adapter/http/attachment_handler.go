package http

import (
	"net/http"

	"vivim-backend/internal/usecase/attachment"

	"github.com/labstack/echo/v4"
)

type AttachmentHandler struct{ uc *attachment.Usecase }

func NewAttachmentHandler(uc *attachment.Usecase) *AttachmentHandler {
	return &AttachmentHandler{uc: uc}
}

type addRefReq struct {
	Kind string `json:"kind" validate:"required,oneof=file link"`
	Name string `json:"name" validate:"max=255"`
	URI  string `json:"uri"  validate:"required"`
}

func (h *AttachmentHandler) AddProposalAttachment(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req addRefReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.AddProposalRef(c.Request().Context(), act, c.Param("proposal_id"), attachment.AddRefInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AttachmentHandler) AddDecisionAttachment(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req addRefReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.AddDecisionRef(c.Request().Context(), act, c.Param("decision_id"), attachment.AddRefInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AttachmentHandler) RemoveAttachment(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.uc.RemoveRef(c.Request().Context(), act, c.Param("attachment_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AttachmentHandler) ListProposalAttachments(c echo.Context) error {
	out, err := h.uc.ListProposalRefs(c.Request().Context(), c.Param("proposal_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
