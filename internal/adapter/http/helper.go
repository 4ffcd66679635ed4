package http

import (
	"errors"
	"net/http"
	"strings"

	"vivim-backend/internal/domain/actor"
	"vivim-backend/internal/domain/attachment"
	"vivim-backend/internal/domain/decision"
	"vivim-backend/internal/domain/proposal"
	"vivim-backend/internal/domain/stage"

	"github.com/labstack/echo/v4"
)

// actorFrom reads the upstream-authenticated identity headers. Missing or
// malformed identity is a 401; the engine never authenticates by itself.
func actorFrom(c echo.Context) (actor.Actor, error) {
	id := strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id"))
	if !reHex32.MatchString(id) {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid Ax-Actor-Id")
	}
	role := actor.Role(strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Role")))
	switch role {
	case actor.RoleDeveloper, actor.RoleCustomer, actor.RoleAdmin:
	default:
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid Ax-Actor-Role")
	}
	return actor.Actor{ID: id, Role: role}, nil
}

// writeError maps domain sentinels to HTTP codes in one place:
// not-found 404, authorization 403, state violations 409, failed guards 422.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, proposal.ErrNotFound),
		errors.Is(err, decision.ErrNotFound),
		errors.Is(err, stage.ErrNotFound),
		errors.Is(err, stage.ErrProjectNotFound),
		errors.Is(err, attachment.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, actor.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, proposal.ErrTerminalState),
		errors.Is(err, proposal.ErrWrongState),
		errors.Is(err, proposal.ErrAlreadySent),
		errors.Is(err, proposal.ErrImmutableRoster),
		errors.Is(err, decision.ErrTerminalState),
		errors.Is(err, decision.ErrNotReviewable):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, proposal.ErrEmptyRoster),
		errors.Is(err, proposal.ErrNoChanges),
		errors.Is(err, proposal.ErrApproverHasDecisions),
		errors.Is(err, decision.ErrBadStatus),
		errors.Is(err, attachment.ErrBadKind),
		errors.Is(err, stage.ErrNotCurrentStage),
		errors.Is(err, stage.ErrIncompleteStage),
		errors.Is(err, stage.ErrFrozenPosition),
		errors.Is(err, stage.ErrNonEmptyStage),
		errors.Is(err, stage.ErrBadPosition):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
