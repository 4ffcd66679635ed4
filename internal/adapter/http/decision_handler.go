package http

import (
	"net/http"

	"vivim-backend/internal/usecase/decision"

	"github.com/labstack/echo/v4"
)

type DecisionHandler struct{ uc *decision.Usecase }

func NewDecisionHandler(uc *decision.Usecase) *DecisionHandler { return &DecisionHandler{uc: uc} }

type recordDecisionReq struct {
	Content string `json:"content"`
	Status  string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

func (h *DecisionHandler) RecordDecision(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req recordDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Record(c.Request().Context(), act, c.Param("approver_id"), decision.RecordDecisionInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DecisionHandler) DeleteDecision(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), act, c.Param("decision_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DecisionHandler) ApproverStatus(c echo.Context) error {
	dto, err := h.uc.ApproverStatus(c.Request().Context(), c.Param("approver_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
