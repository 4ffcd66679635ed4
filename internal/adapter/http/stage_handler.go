package http

import (
	"net/http"

	"vivim-backend/internal/usecase/stage"

	"github.com/labstack/echo/v4"
)

type StageHandler struct{ uc *stage.Usecase }

func NewStageHandler(uc *stage.Usecase) *StageHandler { return &StageHandler{uc: uc} }

type createProjectReq struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (h *StageHandler) CreateProject(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.CreateProject(c.Request().Context(), act, stage.CreateProjectInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type createStageReq struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *StageHandler) CreateStage(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createStageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.CreateStage(c.Request().Context(), act, c.Param("project_id"), stage.CreateStageInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *StageHandler) CurrentStage(c echo.Context) error {
	dto, err := h.uc.CurrentStage(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StageHandler) StageProgress(c echo.Context) error {
	dto, err := h.uc.CompletionRate(c.Request().Context(), c.Param("stage_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StageHandler) Promote(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Promote(c.Request().Context(), act, c.Param("project_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type reorderStageReq struct {
	TargetPosition int `json:"target_position" validate:"required,gte=1"`
}

func (h *StageHandler) ReorderStage(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req reorderStageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	out, err := h.uc.Reorder(c.Request().Context(), act, c.Param("project_id"), c.Param("stage_id"), req.TargetPosition)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StageHandler) DeleteStage(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteStage(c.Request().Context(), act, c.Param("stage_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StageHandler) ProjectProgress(c echo.Context) error {
	dto, err := h.uc.ProjectProgress(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
